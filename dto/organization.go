package dto

type OrganizationInput struct {
	Name     *string
	Acronym  *string
	Zone     *string
	Sector   *string
	Country  *string
	Province *string
	City     *string
}
