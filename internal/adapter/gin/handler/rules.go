package handler

import (
	"user-post-service/pkg/validation"
)

// UserRules validates CreateUserBody.
var UserRules = validation.RuleSet[CreateUserBody]{
	Name: "user",
	Rules: []validation.Rule[CreateUserBody]{
		{Field: "email", Value: userEmail, Tag: "min=1", Message: "Email must not be empty"},
		{Field: "email", Value: userEmail, Tag: "email", Message: "Must be a valid email"},
		{Field: "name", Value: userName, Tag: "min=1", Message: "Name must not be empty"},
		{Field: "role", Value: userRole, Optional: true, Tag: "oneof=ADMIN USER SUPERADMIN", Message: "Role must be 'ADMIN', 'USER', 'SUPERADMIN'"},
	},
}

// PostRules validates CreatePostBody.
var PostRules = validation.RuleSet[CreatePostBody]{
	Name: "post",
	Rules: []validation.Rule[CreatePostBody]{
		{Field: "title", Value: postTitle, Tag: "min=1", Message: "Please Provide title for this post"},
	},
}

func userEmail(b CreateUserBody) *string { return b.Email }
func userName(b CreateUserBody) *string { return b.Name }
func userRole(b CreateUserBody) *string { return b.Role }
func postTitle(b CreatePostBody) *string { return b.Title }
