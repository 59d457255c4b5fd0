package models

import "errors"

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrRecordDuplicate = errors.New("record already exists")
)
