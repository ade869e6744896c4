package repository

import "github.com/alexanderramin/edital/internal/domain"

// ErrNotFound is returned when a lookup matches no row. It is the domain
// sentinel so callers above the repository layer can match it with errors.Is.
var ErrNotFound = domain.ErrNotFound
