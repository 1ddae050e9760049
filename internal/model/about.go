package model

type AboutAuthorRequest struct{}

type AboutAuthorResponse struct{}

func (AboutAuthorResponse) Template() string { return "about/author.html" }

type AboutTechRequest struct{}

type AboutTechResponse struct{}

func (AboutTechResponse) Template() string { return "about/tech.html" }
