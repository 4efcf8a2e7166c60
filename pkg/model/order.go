package model

// Order is stored exactly as the client sent it.
type Order map[string]any
