// Package domain defines the core business entities and errors.
//
// The only entity is Task. Entities validate themselves; persistence and
// transport concerns live in the store and api packages.
package domain
