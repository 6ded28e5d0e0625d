package ports

type SessionPort interface {
	Authorized() bool
	Token() string
	CurrentUser() (*User, error)
	GetChatServer(channel string) (string, int, error)
}

type User struct {
	ID          int64
	Name        string
	DisplayName string
	Logo        string
	Bio         string
}
