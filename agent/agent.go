// Package agent provides an AI assistant answering questions about the
// portfolio and commenting its charts, on top of Gemini.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Print writes an answer, plain by default.
	Print func(w io.Writer, markdown string)
}

// New creates an Agent reading questions from r and writing answers to w.
func New(w io.Writer, r io.Reader, model string, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(model, experts...),
		Print:       func(w io.Writer, md string) { fmt.Fprintln(w, md) },
	}
}

// Start opens the chat sessions of all experts.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// Run starts the interactive session. Prompts are asked first, as if typed.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if !a.Facilitator.Started() {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to pcv assist. Type 'bye' to exit.")
	for {
		input, err := a.next(&prompts)
		if err == io.EOF {
			return nil // Ctrl+D
		}
		if err != nil {
			return err
		}
		if input == "" {
			continue
		}
		if input == "bye" {
			return nil
		}

		answer, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		a.Print(a.w, answer)
	}
}

// next prints the prompt and returns the next input, from prompts first.
func (a *Agent) next(prompts *[]string) (string, error) {
	fmt.Fprint(a.w, prompt)
	if len(*prompts) > 0 {
		input := strings.TrimSpace((*prompts)[0])
		*prompts = (*prompts)[1:]
		fmt.Fprintln(a.w, input)
		return input, nil
	}
	input, err := a.r.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
