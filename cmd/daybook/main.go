package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"daybook/internal/assistant"
	"daybook/internal/config"
	"daybook/internal/crypto"
	"daybook/internal/db"
	"daybook/internal/journal"
	"daybook/internal/models"
	"daybook/internal/services"
	"daybook/internal/store"
)

var dbURL string

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "daybook",
		Short: "Personal journal with optional AI mood, tag and insight inference",
	}

	rootCmd.PersistentFlags().StringVar(&dbURL, "db", cfg.DatabaseURL, "database path or postgres URL")

	rootCmd.AddCommand(newCmd(cfg))
	rootCmd.AddCommand(listCmd(cfg))
	rootCmd.AddCommand(showCmd(cfg))
	rootCmd.AddCommand(deleteCmd(cfg))
	rootCmd.AddCommand(statsCmd(cfg))
	rootCmd.AddCommand(analyzeCmd(cfg))
	rootCmd.AddCommand(exportCmd(cfg))
	rootCmd.AddCommand(promptsCmd())
	rootCmd.AddCommand(chatCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getStore(cfg *config.Config) (*store.Store, func(), error) {
	cfg.DatabaseURL = dbURL
	conn, err := db.Open(cfg.DriverName(), cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	var codec store.EntryCodec
	if cfg.EncryptionKey != "" {
		key, err := crypto.ParseKey(cfg.EncryptionKey)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		encSvc, err := services.NewEncryptionService(key)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		codec = encSvc
	}

	return store.New(conn, codec), func() { conn.Close() }, nil
}

func getAssistant(cfg *config.Config) *assistant.Assistant {
	if !cfg.AIAvailable() {
		return nil
	}
	ai, err := assistant.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	if err != nil {
		return nil
	}
	return ai
}

func newCmd(cfg *config.Config) *cobra.Command {
	var title, mood, date string
	var tags []string
	var noAI bool

	cmd := &cobra.Command{
		Use:   "new [content]",
		Short: "Write a new journal entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.TrimSpace(strings.Join(args, " "))
			if content == "" {
				fmt.Println("Write your entry. Finish with a line containing only END:")
				var lines []string
				scanner := bufio.NewScanner(os.Stdin)
				for scanner.Scan() {
					line := scanner.Text()
					if strings.TrimSpace(line) == "END" {
						break
					}
					lines = append(lines, line)
				}
				content = strings.TrimSpace(strings.Join(lines, "\n"))
			}
			if content == "" {
				return fmt.Errorf("entry content is empty")
			}

			entry := models.JournalEntry{Title: title, Content: content, Tags: tags}
			if mood != "" {
				entry.Mood = &mood
			}
			if date != "" {
				parsed, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid --date; expected YYYY-MM-DD")
				}
				entry.Date = parsed.UTC()
			}

			if !noAI {
				if ai := getAssistant(cfg); ai != nil {
					fmt.Print("Analyzing entry... ")
					cls, err := ai.ProcessEntry(cmd.Context(), content)
					if err != nil {
						fmt.Printf("skipped: %v\n", err)
					} else {
						fmt.Println("done")
						if entry.Title == "" {
							entry.Title = cls.Title
						}
						if entry.Mood == nil && cls.Mood != "" {
							entry.Mood = &cls.Mood
						}
						if entry.Tags == nil {
							entry.Tags = cls.Tags
						}
						if cls.Insights != "" {
							entry.Insights = &cls.Insights
						}
					}
				}
			}
			if entry.Title == "" {
				entry.Title = "Untitled Entry"
			}

			s, closeStore, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			stored, err := s.Create(cmd.Context(), &entry)
			if err != nil {
				return err
			}

			fmt.Printf("Saved entry #%d: %s\n", stored.ID, stored.Title)
			if stored.Mood != nil {
				fmt.Printf("Mood: %s\n", *stored.Mood)
			}
			if len(stored.Tags) > 0 {
				fmt.Printf("Tags: %s\n", strings.Join(stored.Tags, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "entry title (AI-generated when omitted)")
	cmd.Flags().StringVar(&mood, "mood", "", "mood label")
	cmd.Flags().StringVar(&date, "date", "", "entry date (YYYY-MM-DD, defaults to now)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "comma-separated tags")
	cmd.Flags().BoolVar(&noAI, "no-ai", false, "skip AI analysis")
	return cmd
}

func listCmd(cfg *config.Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			entries, err := s.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No entries yet.")
				return nil
			}
			for _, e := range entries {
				mood := ""
				if e.Mood != nil && *e.Mood != "" {
					mood = " (" + *e.Mood + ")"
				}
				fmt.Printf("#%-4d %s  %s%s\n", e.ID, e.Date.Format("2006-01-02"), e.Title, mood)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum entries to show")
	return cmd
}

func showCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id: %s", args[0])
			}

			s, closeStore, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			entry, err := s.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if entry == nil {
				return fmt.Errorf("entry #%d not found", id)
			}

			fmt.Printf("Entry #%d - %s\n", entry.ID, entry.Title)
			fmt.Printf("Date: %s\n", entry.Date.Format("2006-01-02 15:04"))
			mood := "Not specified"
			if entry.Mood != nil && *entry.Mood != "" {
				mood = *entry.Mood
			}
			fmt.Printf("Mood: %s\n", mood)
			tags := "None"
			if len(entry.Tags) > 0 {
				tags = strings.Join(entry.Tags, ", ")
			}
			fmt.Printf("Tags: %s\n", tags)
			fmt.Println(strings.Repeat("-", 30))
			fmt.Println(entry.Content)
			if entry.Insights != nil && *entry.Insights != "" {
				fmt.Println("\nAI Insights:")
				fmt.Println(*entry.Insights)
			}
			return nil
		},
	}
}

func deleteCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id: %s", args[0])
			}

			s, closeStore, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			existed, err := s.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !existed {
				return fmt.Errorf("entry #%d not found", id)
			}
			fmt.Printf("Deleted entry #%d\n", id)
			return nil
		},
	}
}

func statsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show journal statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			entries, err := s.List(cmd.Context(), 1000)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No entries yet.")
				return nil
			}

			fmt.Printf("Total Entries: %d\n", len(entries))
			if oldest, newest, ok := journal.DateSpan(entries); ok {
				fmt.Printf("Date Range: %s to %s\n", oldest.Format("2006-01-02"), newest.Format("2006-01-02"))
			}

			if moods := journal.MoodHistogram(entries); len(moods) > 0 {
				fmt.Println("\nTop Moods:")
				printTopCounts(moods, 5)
			}
			if tags := journal.TagHistogram(entries); len(tags) > 0 {
				fmt.Println("\nTop Tags:")
				printTopCounts(tags, 10)
			}

			streak := journal.WritingStreak(entries, time.Now().UTC())
			fmt.Printf("\nCurrent Writing Streak: %d days\n", streak)
			return nil
		},
	}
}

func printTopCounts(counts map[string]int, top int) {
	type pair struct {
		label string
		count int
	}
	pairs := make([]pair, 0, len(counts))
	for label, count := range counts {
		pairs = append(pairs, pair{label, count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].label < pairs[j].label
	})
	if len(pairs) > top {
		pairs = pairs[:top]
	}
	for _, p := range pairs {
		fmt.Printf("  %s: %d entries\n", p.label, p.count)
	}
}

func analyzeCmd(cfg *config.Config) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze recent entries for emotional patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			ai := getAssistant(cfg)
			if ai == nil {
				return fmt.Errorf("AI features are not available; set OPENAI_API_KEY")
			}

			s, closeStore, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			end := time.Now().UTC()
			entries, err := s.ListByDateRange(cmd.Context(), end.AddDate(0, 0, -days), end)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Printf("No entries found in the last %d days.\n", days)
				return nil
			}

			fmt.Printf("Analyzing %d entries from the last %d days...\n\n", len(entries), days)
			analysis, err := ai.AnalyzePatterns(cmd.Context(), entries)
			if err != nil {
				return err
			}
			fmt.Println("Emotional Pattern Analysis:")
			fmt.Println(analysis.Analysis)

			if len(entries) >= 3 {
				window := entries
				if len(window) > 7 {
					window = window[:7]
				}
				summary, err := ai.WeeklySummary(cmd.Context(), window)
				if err != nil {
					return err
				}
				fmt.Println("\nWeekly Summary:")
				fmt.Println(summary)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "analyze entries from the last N days")
	return cmd
}

func exportCmd(cfg *config.Config) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all entries to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "txt" {
				return fmt.Errorf("invalid format %q; expected json or txt", format)
			}

			s, closeStore, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			entries, err := s.List(cmd.Context(), 1000)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No entries to export.")
				return nil
			}

			var payload []byte
			if format == "json" {
				payload, err = journal.ExportJSON(entries)
				if err != nil {
					return err
				}
			} else {
				payload = journal.ExportText(entries)
			}

			if output == "" {
				output = fmt.Sprintf("journal_export_%s.%s", time.Now().Format("20060102_150405"), format)
			}
			if err := os.WriteFile(output, payload, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Printf("Exported %d entries to %s\n", len(entries), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "export format (json, txt)")
	cmd.Flags().StringVar(&output, "output", "", "output file path")
	return cmd
}

func promptsCmd() *cobra.Command {
	var promptType string

	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Show a writing prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := assistant.PromptFor(promptType)
			fmt.Println(p.Text)
			for _, s := range p.Suggestions {
				fmt.Printf("  - %s\n", s)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&promptType, "type", "daily", "prompt type: "+strings.Join(assistant.PromptTypes(), ", "))
	return cmd
}

func chatCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk with the journaling assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ai := getAssistant(cfg)
			if ai == nil {
				return fmt.Errorf("AI features are not available; set OPENAI_API_KEY")
			}

			fmt.Println("Chat with your journal assistant. Type 'exit' to leave.")
			var history []assistant.ChatMessage
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				input := strings.TrimSpace(scanner.Text())
				if input == "" {
					continue
				}
				if input == "exit" || input == "quit" {
					break
				}

				reply, err := ai.Chat(cmd.Context(), history, input)
				if err != nil {
					fmt.Printf("assistant error: %v\n", err)
					continue
				}
				fmt.Println(reply)
				history = append(history,
					assistant.ChatMessage{Role: "user", Content: input},
					assistant.ChatMessage{Role: "assistant", Content: reply},
				)
			}
			return nil
		},
	}
}
