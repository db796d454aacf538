package prompt

import (
	"fmt"
	"sort"
)

// PromptFunc asks the user for a value, the TOTP secret usually
type PromptFunc func(message string) (string, error)

var Methods = map[string]PromptFunc{}

func Available() []string {
	methods := []string{}
	for k := range Methods {
		methods = append(methods, k)
	}
	sort.Strings(methods)
	return methods
}

func Method(s string) PromptFunc {
	m, ok := Methods[s]
	if !ok {
		panic(fmt.Sprintf("Prompt method %q doesn't exist", s))
	}
	return m
}
