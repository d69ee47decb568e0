package domain

import "strings"

// EmailAddress is the {address, display} pair written to the board's email column.
type EmailAddress struct {
	Address string `json:"email"`
	Display string `json:"text"`
}

// NewEmailAddress uses the address as its own display text.
func NewEmailAddress(address string) EmailAddress {
	return EmailAddress{Address: address, Display: address}
}

// Submission is one inbound form response. RawCategory and RawPriority
// keep the submitted labels; Category is empty when the label is not allowed.
type Submission struct {
	Description   string
	RawCategory   string
	Category      Category
	RawPriority   string
	Priority      Priority
	ReporterEmail string
	LinkOfRecord  string
	Attachments   []any
}

// NewSubmission trims the raw form fields and parses category and priority.
func NewSubmission(description, category, priority, email, link string, attachments []any) Submission {
	sub := Submission{
		Description:   strings.TrimSpace(description),
		RawCategory:   strings.TrimSpace(category),
		RawPriority:   strings.TrimSpace(priority),
		ReporterEmail: strings.TrimSpace(email),
		LinkOfRecord:  strings.TrimSpace(link),
		Attachments:   attachments,
	}
	if c, ok := ParseCategory(category); ok {
		sub.Category = c
	}
	if p, ok := ParsePriority(priority); ok {
		sub.Priority = p
	}
	return sub
}
