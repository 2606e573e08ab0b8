package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/securepass/securepass/internal/ai"
	"github.com/securepass/securepass/internal/client"
	"github.com/securepass/securepass/internal/models"
	"github.com/securepass/securepass/internal/service"
)

var (
	version   string
	buildDate string
)

const helpText = `Available commands:
  help                      show this message
  login <email> <password>  open a session
  logout                    close the session
  list [query]              list credentials
  notes [query]             list notes
  add                       add a credential
  note                      add a note
  delete <id>               delete a credential
  share <type> <id> <email> share a credential or note (type: credential|note)
  inbox                     list pending items shared with you
  outbox                    list items you shared
  accept <id>               accept a shared item into your vault
  decline <id>              decline a shared item
  export                    save a vault snapshot to disk
  import                    restore the vault from the snapshot
  generate <length>         generate a password
  analyze <password>        analyze password strength
  phishing <url>            check a URL for phishing
  darkweb <email> <apikey>  scan for breached accounts
  exit                      quit`

func printShares(views []service.SharedItemView) {
	if len(views) == 0 {
		fmt.Println("Nothing here")
		return
	}
	for _, v := range views {
		fmt.Printf("%s  [%s] %q from %s to %s (%s)\n",
			v.ID, v.ItemType, v.Title(), v.SenderEmail, v.RecipientEmail, v.Status)
	}
}

// repl runs the interactive shell loop against the API.
func repl(api *client.API) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("securepass> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println(helpText)
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <email> <password>")
				continue
			}
			res, err := api.Login(args[1], args[2])
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("Logged in as %s (%s)\n", res.Name, res.Role)
			if res.ForceReset {
				fmt.Println("Your password was reset by an administrator. Please change it.")
			}
		case "logout":
			if err := api.Logout(); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println("Logged out")
		case "list":
			query := strings.Join(args[1:], " ")
			creds, err := api.ListCredentials(query)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if len(creds) == 0 {
				fmt.Println("No credentials found")
				continue
			}
			for _, c := range creds {
				fmt.Printf("%s  %q %s %s\n", c.ID, c.Title, c.Username, c.URL)
			}
		case "notes":
			query := strings.Join(args[1:], " ")
			notes, err := api.ListNotes(query)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if len(notes) == 0 {
				fmt.Println("No notes found")
				continue
			}
			for _, n := range notes {
				fmt.Printf("%s  %q (%s)\n", n.ID, n.Title, n.Category)
			}
		case "add":
			created, err := api.AddCredential(client.PromptForCredential())
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("Credential saved: %s\n", created.ID)
		case "note":
			created, err := api.AddNote(client.PromptForNote())
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("Note saved: %s\n", created.ID)
		case "delete":
			if len(args) < 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			if err := api.DeleteCredential(args[1]); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println("Credential deleted")
		case "share":
			if len(args) < 4 {
				fmt.Println("Usage: share <type> <id> <email> [email...]")
				continue
			}
			created, failures, err := api.Share(args[3:], []string{args[2]}, models.ItemType(args[1]))
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("Shared with %d recipient(s)\n", created)
			for _, f := range failures {
				fmt.Printf("  %s: %s\n", f.Recipient, f.Reason)
			}
		case "inbox":
			views, err := api.Inbox()
			if err != nil {
				fmt.Println(err)
				continue
			}
			printShares(views)
		case "outbox":
			views, err := api.Outbox()
			if err != nil {
				fmt.Println(err)
				continue
			}
			printShares(views)
		case "accept":
			if len(args) < 2 {
				fmt.Println("Usage: accept <id>")
				continue
			}
			rec, err := api.Accept(args[1])
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("Accepted %s into your vault\n", rec.ItemType)
		case "decline":
			if len(args) < 2 {
				fmt.Println("Usage: decline <id>")
				continue
			}
			if err := api.Decline(args[1]); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println("Share declined")
		case "export":
			data, err := api.Export()
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err := client.SaveSnapshot(data); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println("Vault snapshot saved")
		case "import":
			data, ok, err := client.LoadSnapshot()
			if err != nil {
				fmt.Println(err)
				continue
			}
			if !ok {
				fmt.Println("No snapshot found")
				continue
			}
			if err := api.Import(data); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println("Vault restored from snapshot")
		case "generate":
			length := 16
			if len(args) > 1 {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					fmt.Println("Usage: generate <length>")
					continue
				}
				length = n
			}
			out, err := api.GeneratePassword(ai.GeneratePasswordInput{
				Length:          length,
				UseUppercase:    true,
				UseLowercase:    true,
				UseNumbers:      true,
				UseSymbols:      true,
				ComplexityLevel: "high",
			})
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(out.Password)
			fmt.Println(out.Reasoning)
		case "analyze":
			if len(args) < 2 {
				fmt.Println("Usage: analyze <password>")
				continue
			}
			out, err := api.AnalyzePassword(ai.AnalyzeStrengthInput{Password: args[1]})
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("Strength: %s (compromised: %v)\n", out.Strength, out.Compromised)
			for _, s := range out.Suggestions {
				fmt.Printf("  - %s\n", s)
			}
		case "phishing":
			if len(args) < 2 {
				fmt.Println("Usage: phishing <url>")
				continue
			}
			out, err := api.DetectPhishing(ai.DetectPhishingInput{URL: args[1]})
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("Phishing: %v\n%s\n", out.IsPhishing, out.Reason)
		case "darkweb":
			if len(args) < 3 {
				fmt.Println("Usage: darkweb <email> <apikey>")
				continue
			}
			out, err := api.DarkWeb(ai.MonitorDarkWebInput{Email: args[1], APIKey: args[2]})
			if err != nil {
				fmt.Println(err)
				continue
			}
			if !out.FoundBreaches {
				fmt.Println("No breaches found")
				continue
			}
			b, _ := json.MarshalIndent(out.BreachRecords, "", "  ")
			fmt.Println(string(b))
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main parses command-line flags and starts the interactive shell.
func main() {
	var (
		baseURL string
		showVer bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("SecurePass Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	repl(client.New(baseURL))
}
