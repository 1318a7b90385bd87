// ABOUTME: Entry point for the insurance CRM assistant
// ABOUTME: Routes to chat, CLI, TUI, web, MCP, or viz commands based on arguments
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/harperreed/inscrm/chat"
	"github.com/harperreed/inscrm/cli"
	"github.com/harperreed/inscrm/config"
	"github.com/harperreed/inscrm/db"
	"github.com/harperreed/inscrm/logging"
	"github.com/harperreed/inscrm/store"
	"github.com/harperreed/inscrm/tui"
	"github.com/harperreed/inscrm/web"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	mode := flag.String("mode", "", "Initial chat mode: local or remote (default from config)")
	storeKind := flag.String("store", "", "Data backend: memory or sqlite (default from config)")
	dbPath := flag.String("db-path", "", "SQLite path when --store=sqlite (default: in memory)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("inscrm version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	if command == "help" {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *storeKind != "" {
		cfg.Store = *storeKind
	}
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// The web server logs to stderr; everything else owns the terminal.
	logPath := ""
	if command != "web" {
		if logPath, err = logging.DefaultFile(); err != nil {
			log.Fatalf("Failed to prepare log file: %v", err)
		}
	}
	logger, err := logging.New(cfg.LogLevel, logPath)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	s, closeStore, err := openStore(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher, err := chat.FromConfig(ctx, cfg, s, logger)
	if err != nil {
		log.Fatalf("Failed to start assistant: %v", err)
	}

	switch command {
	case "chat":
		if cli.Interactive() && !hasFlag(commandArgs, "--plain") {
			p := tea.NewProgram(tui.NewChatModel(s, dispatcher), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				log.Fatalf("Chat failed: %v", err)
			}
			return
		}
		if err := cli.ChatCommand(ctx, dispatcher, dropFlag(commandArgs, "--plain")); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "ask":
		if err := cli.AskCommand(ctx, dispatcher, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "crm":
		if len(commandArgs) == 0 {
			fmt.Println("Error: crm requires a subcommand")
			printUsage()
			os.Exit(1)
		}
		if err := runCRM(s, commandArgs[0], commandArgs[1:]); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "tui":
		p := tea.NewProgram(tui.NewModel(s, dispatcher), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}

	case "web":
		fs := flag.NewFlagSet("web", flag.ExitOnError)
		port := fs.Int("port", 8080, "Port to listen on")
		_ = fs.Parse(commandArgs)

		server, err := web.NewServer(s, dispatcher, logger.Named("web"))
		if err != nil {
			log.Fatalf("Failed to create web server: %v", err)
		}
		fmt.Printf("Insurance CRM running at http://localhost:%d\n", *port)
		if err := server.Start(ctx, *port); err != nil {
			log.Fatalf("Web server failed: %v", err)
		}

	case "mcp":
		if err := cli.MCPCommand(ctx, s, dispatcher, logger.Named("mcp"), version); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "viz":
		if err := runViz(s, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// openStore builds the configured backend over freshly seeded mock data.
func openStore(cfg *config.Config, logger *zap.Logger) (store.ReadWriter, func(), error) {
	now := time.Now()

	if cfg.Store != config.StoreSQLite {
		logger.Info("using in-memory store")
		return store.NewSeeded(now), func() {}, nil
	}

	database, err := db.Open(cfg.DatabasePath, nil)
	if err != nil {
		return nil, nil, err
	}
	seeded, err := database.SeedIfEmpty(store.Seed(now))
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	logger.Info("using sqlite store",
		zap.String("path", cfg.DatabasePath),
		zap.Bool("seeded", seeded))

	return database, func() { _ = database.Close() }, nil
}

func runCRM(s store.ReadWriter, command string, args []string) error {
	switch command {
	// Client commands
	case "list-clients":
		return cli.ListClientsCommand(s, args)
	case "show-client":
		return cli.ShowClientCommand(s, args)
	case "add-client":
		return cli.AddClientCommand(s, args)

	// Policy commands
	case "list-policies":
		return cli.ListPoliciesCommand(s, args)

	// Task commands
	case "list-tasks":
		return cli.ListTasksCommand(s, args)
	case "update-task":
		return cli.UpdateTaskCommand(s, args)

	case "list-opportunities":
		return cli.ListOpportunitiesCommand(s, args)
	case "list-communications":
		return cli.ListCommunicationsCommand(s, args)
	case "reports":
		return cli.ReportsCommand(s, args)
	}

	fmt.Printf("Unknown crm command: %s\n\n", command)
	printUsage()
	os.Exit(1)
	return nil
}

func runViz(s store.Store, args []string) error {
	if len(args) == 0 {
		fmt.Println("Error: viz requires a subcommand")
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "dashboard":
		return cli.VizDashboardCommand(s, args[1:])
	case "graph":
		if len(args) < 2 {
			fmt.Println("Error: viz graph requires a type (client or portfolio)")
			printUsage()
			os.Exit(1)
		}
		switch args[1] {
		case "client":
			return cli.VizGraphClientCommand(s, args[2:])
		case "portfolio":
			return cli.VizGraphPortfolioCommand(s, args[2:])
		}
		fmt.Printf("Unknown graph type: %s\n\n", args[1])
	default:
		fmt.Printf("Unknown viz command: %s\n\n", args[0])
	}
	printUsage()
	os.Exit(1)
	return nil
}

func hasFlag(args []string, name string) bool {
	for _, a := range args {
		if a == name {
			return true
		}
	}
	return false
}

func dropFlag(args []string, name string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a != name {
			out = append(out, a)
		}
	}
	return out
}

func printUsage() {
	fmt.Printf(`inscrm v%s - Insurance CRM assistant

USAGE:
  inscrm [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --mode <mode>          Initial chat mode: local or remote
  --store <kind>         Data backend: memory (default) or sqlite
  --db-path <path>       SQLite path (default: :memory:)
  --log-level <level>    debug, info, warn, or error

COMMANDS:
  chat                   Talk to the assistant (full screen on a terminal)
  ask <question>         Ask one question and print the answer
  crm                    Browse and edit the book of business
  tui                    Full-screen record browser with docked chat
  web                    Web dashboard with the chat widget
  mcp                    Start MCP server on stdio
  viz                    Dashboards and relationship graphs

CHAT:
  inscrm chat [--mode local|remote] [--plain]
    In the chat: /mode local|remote, /clear, /help, /quit

  inscrm ask [--mode local|remote] <question>

CRM COMMANDS:
  inscrm crm list-clients        List clients
    --query <text>                 Search by name
    --status <status>              active, inactive, or pending

  inscrm crm show-client <id|name>  Client detail with policies and tasks

  inscrm crm add-client          Add a client for this session
    --first <name>                 First name (required)
    --last <name>                  Last name (required)
    --email <email>                Email address (required)
    --phone <phone>                Phone number
    --address <address>            Postal address

  inscrm crm list-policies       List policies
    --type <type>                  Filter by policy type
    --client <id|name>             Filter by client
    --expiring                     Only policies ending within a month

  inscrm crm list-tasks          List tasks
    --today                        Due today
    --overdue                      Past due and not finished

  inscrm crm update-task [flags] <id>  Change a task's status
    --status <status>              pending, in_progress, completed, cancelled
    Note: flags must come before the task ID

  inscrm crm list-opportunities  List opportunities
    --client <id|name>             Filter by client
    --priority <priority>          high, medium, or low
    --open                         Hide completed and rejected

  inscrm crm list-communications List communications
    --client <id|name>             Filter by client
    --type <type>                  email, call, sms, meeting, note, letter

  inscrm crm reports             Saved reports
    --live                         Recompute metrics from current data

VIZ COMMANDS:
  inscrm viz dashboard                 Terminal dashboard
  inscrm viz graph client <id|name>    Client relationship graph (DOT)
    --output <file>                      Output file (default: stdout)
  inscrm viz graph portfolio           Whole book by policy type (DOT)
    --output <file>                      Output file (default: stdout)

WEB:
  inscrm web [--port 8080]

EXAMPLES:
  # Ask the local assistant
  inscrm ask "Which policies are expiring soon?"

  # Chat with the remote model (needs OPENAI_API_KEY or GEMINI_API_KEY)
  inscrm --mode remote chat

  # Browse the SQLite backend instead of the in-memory one
  inscrm --store sqlite tui

`, version)
}
