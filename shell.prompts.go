package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// readLine prints the prompt and waits for the next input line.
// It returns io.EOF once the input is exhausted, the read failure if the
// input broke, and ctx.Err() when ctx is done.
func (sh *Shell) readLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(sh.out, prompt)
	select {
	case <-ctx.Done():
		fmt.Fprintln(sh.out)
		return "", ctx.Err()
	case line, ok := <-sh.lines:
		if !ok {
			fmt.Fprintln(sh.out)
			select {
			case err := <-sh.inErrs:
				return "", fmt.Errorf("failed to read input: %w", err)
			default:
				return "", io.EOF
			}
		}
		return line, nil
	}
}

// promptRequired asks until a non blank answer is given.
func (sh *Shell) promptRequired(ctx context.Context, prompt, field string) (string, error) {
	for {
		value, err := sh.readLine(ctx, prompt)
		if err != nil {
			return "", err
		}
		if value = strings.TrimSpace(value); len(value) != 0 {
			return value, nil
		}
		sh.println(fmt.Sprintf("Please enter the %s.", field))
	}
}

// promptYear asks until a non-negative number is given.
func (sh *Shell) promptYear(ctx context.Context, prompt string) (int, error) {
	for {
		value, err := sh.readLine(ctx, prompt)
		if err != nil {
			return 0, err
		}
		year, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			sh.println("Please enter a valid year number.")
			continue
		}
		if year < 0 {
			sh.println("Please enter a valid year.")
			continue
		}
		return year, nil
	}
}

// promptYesNo asks until a yes/y or no/n answer is given, ignoring case.
func (sh *Shell) promptYesNo(ctx context.Context, prompt string) (bool, error) {
	for {
		value, err := sh.readLine(ctx, prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}
		sh.println("Please enter 'yes' or 'no'.")
	}
}

// promptSearchField asks until 1 (title) or 2 (author) is given.
// The field names themselves are accepted too.
func (sh *Shell) promptSearchField(ctx context.Context, prompt string) (SearchField, error) {
	for {
		value, err := sh.readLine(ctx, prompt)
		if err != nil {
			return 0, err
		}
		choice, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			if field, perr := ParseSearchField(value); perr == nil {
				return field, nil
			}
			sh.println("Please enter a number.")
			continue
		}
		switch choice {
		case 1:
			return SearchByTitle, nil
		case 2:
			return SearchByAuthor, nil
		}
		sh.println("Please enter 1 or 2.")
	}
}
