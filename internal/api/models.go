package api

// Common request structures. Responses use the shared.Envelope shape.

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Fullname string `json:"fullname" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Age      int    `json:"age"      validate:"required,gt=0"`
	Gender   string `json:"gender"   validate:"required"`
	Mobile   string `json:"mobile"   validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// CreateWeeklistRequest defines the payload for weeklist creation. One task
// is created per description, in order.
type CreateWeeklistRequest struct {
	Tasks []string `json:"tasks" validate:"required,min=1,dive,required"`
}

// AddTaskRequest defines the payload for appending a task.
type AddTaskRequest struct {
	NewTask string `json:"new_task" validate:"required"`
}

// EditTaskRequest defines the payload for rewriting a task's description.
type EditTaskRequest struct {
	UpdatedTask string `json:"updated_task" validate:"required"`
}

// AuthData is the data payload for successful register/login responses.
type AuthData struct {
	Token string `json:"jwtoken"`
}
