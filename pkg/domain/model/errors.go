package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrIssueNotFound     = goerr.New("issue not found")
	ErrUserNotFound      = goerr.New("user not found")
	ErrAlreadyVoted      = goerr.New("user has already voted on this issue")
	ErrInvalidTransition = goerr.New("invalid status transition")
)
