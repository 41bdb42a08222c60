package domain

// Principal аутентифицированная личность, которую поставляет внешний
// коллаборатор аутентификации. Движок доверяет ей и не интерпретирует.
type Principal struct {
	ID          int64
	DisplayName string
}
