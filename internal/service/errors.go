package service

import "errors"

var (
	// ErrNoToken indica que no hay sesión con token; no se envía ninguna petición.
	ErrNoToken = errors.New("no session token")
	// ErrNotConfirmed rechaza un borrado que el usuario no confirmó.
	ErrNotConfirmed = errors.New("delete not confirmed")
)
