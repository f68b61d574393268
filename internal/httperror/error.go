package httperror

type Error struct {
	Message string `json:"error" example:"You must specify a budget ID"`
}

func New(e error) Error {
	return Error{
		Message: e.Error(),
	}
}

func NewFromString(s string) Error {
	return Error{
		Message: s,
	}
}
