package repository

// Repositories is a container for all repository instances.
type Repositories struct {
	Users *UserRepository
	Posts *PostRepository
}

// NewRepositories builds every repository on top of the shared connection.
func NewRepositories(conn Connection) *Repositories {
	return &Repositories{
		Users: NewUserRepository(conn),
		Posts: NewPostRepository(conn),
	}
}
