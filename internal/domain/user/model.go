package user

// User - учетная запись, как ее возвращает GET /auth/me.
// Клиент никогда не создает User сам.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
