// Package sample holds checked-in schemas and the code generated from them.
package sample

//go:generate go run ../.. generate
