package client

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/securepass/securepass/internal/models"
)

func promptLine(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	scanner.Scan()
	return strings.TrimSpace(scanner.Text())
}

// PromptForCredential reads a new credential from the shell.
func PromptForCredential() models.Credential {
	scanner := bufio.NewScanner(os.Stdin)

	title := promptLine(scanner, "Enter title: ")
	username := promptLine(scanner, "Enter username: ")
	password := promptLine(scanner, "Enter password: ")
	url := promptLine(scanner, "Enter url: ")
	tagLine := promptLine(scanner, "Enter tags (comma separated): ")
	notes := promptLine(scanner, "Enter notes (optional): ")

	var tags []string
	for _, tag := range strings.Split(tagLine, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return models.Credential{
		Title:    title,
		Username: username,
		Password: password,
		URL:      url,
		Tags:     tags,
		Notes:    notes,
	}
}

// PromptForNote reads a new note from the shell.
func PromptForNote() models.Note {
	scanner := bufio.NewScanner(os.Stdin)

	title := promptLine(scanner, "Enter title: ")
	category := promptLine(scanner, "Enter category (Work/Personal/Development/Other): ")
	content := promptLine(scanner, "Enter content: ")

	return models.Note{
		Title:    title,
		Category: models.NoteCategory(category),
		Content:  content,
	}
}
