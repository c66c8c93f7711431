package admin

// Admin is a reviewer whose credentials were accepted by the identity service.
type Admin struct {
	Email string
	Name  string
}

func (a Admin) DisplayName() string {
	if len(a.Name) > 0 {
		return a.Name
	}
	return a.Email
}
