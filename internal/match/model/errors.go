package model

import "errors"

var (
	// ErrMatchNotFound is returned when match is not found.
	ErrMatchNotFound = errors.New("match not found")

	// ErrMatchAlreadyCompleted is returned when a completed match is resolved again.
	ErrMatchAlreadyCompleted = errors.New("match already completed")

	// ErrInvalidMode is returned for an unknown resolution mode.
	ErrInvalidMode = errors.New("mode must be \"played\" or \"simulated\"")

	// ErrInvalidRound is returned for an unknown round filter.
	ErrInvalidRound = errors.New("invalid round")

	// ErrTeamMissing is returned when a match references a team that no longer exists.
	ErrTeamMissing = errors.New("match team missing")
)

// ErrSlotTaken is returned when a bracket slot already has a match.
var ErrSlotTaken = errors.New("bracket slot already has a match")
