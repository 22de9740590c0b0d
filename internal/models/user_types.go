package models

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// User is a registered shopper. Email is unique within the registry.
// PasswordHash is persisted under "password" and never rendered by the API.
type User struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}

// PublicUser is the API view of a User.
type PublicUser struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

// Password Helper (Standard)
// Only the hash is kept. Cost 0 means bcrypt.DefaultCost.
type Password struct {
	Hash string
	Cost int
}

func (p *Password) Set(plaintextPassword string) error {
	cost := p.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), cost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
