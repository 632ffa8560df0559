package entity

type UserLoginData struct {
	Email string
}
