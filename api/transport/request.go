package transport

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateTaskRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	DueDate      string `json:"due_date"`
	AssignedUser string `json:"assigned_user"`
	Priority     string `json:"priority"`
}

// PatchTaskRequest carries a partial edit; absent fields stay untouched.
type PatchTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
}

type StatusRequest struct {
	Status string `json:"status"`
}
