package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lmoreno/spancards/internal/config"
	"github.com/lmoreno/spancards/internal/logger"
	"github.com/lmoreno/spancards/internal/models"
	"github.com/lmoreno/spancards/internal/session"
	"github.com/lmoreno/spancards/internal/stats"
	"github.com/lmoreno/spancards/internal/storage/sqlite"
	"github.com/lmoreno/spancards/internal/store"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("spancards starting")
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("quiz_option_count=%d", cfg.QuizOptionCount)

	gw, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open storage: %v", err)
		os.Exit(1)
	}
	defer gw.Close()

	st := store.New(gw)

	app := &app{cfg: cfg, store: st, in: bufio.NewScanner(os.Stdin), log: log}
	app.run()
}

type app struct {
	cfg   config.Config
	store *store.Store
	in    *bufio.Scanner
	log   *logger.Logger
}

func (a *app) run() {
	for {
		fmt.Println()
		fmt.Println("1) study a deck  2) statistics  3) reset all data  q) quit")
		switch a.prompt("> ") {
		case "1":
			a.chooseSession()
		case "2":
			a.printStats()
		case "3":
			a.reset()
		case "q", "quit", "exit":
			return
		}
	}
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) chooseSession() {
	decks := a.store.AllDecks()
	fmt.Println()
	for i, d := range decks {
		fmt.Printf("%d) %s (%d cards) — %s\n", i+1, d.Name, len(a.store.CardsByDeck(d.ID)), d.Description)
	}
	fmt.Printf("a) all cards  d) difficult cards\n")

	selection := ""
	switch choice := a.prompt("deck> "); choice {
	case "a":
		selection = models.DeckAll
	case "d":
		selection = models.DeckDifficult
	default:
		idx, err := strconv.Atoi(choice)
		if err != nil || idx < 1 || idx > len(decks) {
			fmt.Println("no such deck")
			return
		}
		selection = decks[idx-1].ID
	}

	cards := a.store.StudySet(selection)
	if len(cards) == 0 {
		fmt.Println("nothing to study here yet")
		return
	}

	var mode session.Mode
	switch a.prompt("mode: 1) flip review  2) multiple choice  3) fill in > ") {
	case "2":
		mode = session.ModeMultipleChoice
	case "3":
		mode = session.ModeFill
	default:
		mode = session.ModeFlip
	}

	eng := session.New(selection, cards, mode,
		session.WithRecorder(a.store),
		session.WithOnComplete(a.store.AddSession),
		session.WithOptionCount(a.cfg.QuizOptionCount),
		session.WithCaseSensitive(a.cfg.CaseSensitive),
	)
	a.runSession(eng)
}

func (a *app) runSession(eng *session.Engine) {
	for {
		for eng.State() == session.StatePresenting {
			a.playCard(eng)
		}

		fmt.Printf("\nsession complete: %d correct, %d incorrect\n", eng.Correct(), eng.Incorrect())
		if wrong := eng.WrongCardIDs(); len(wrong) > 0 {
			switch a.prompt("r) redo wrong cards  s) restart  enter) done > ") {
			case "r":
				eng.RedoWrong()
				continue
			case "s":
				eng.Restart()
				continue
			}
		}
		return
	}
}

func (a *app) playCard(eng *session.Engine) {
	card, ok := eng.Current()
	if !ok {
		return
	}
	number, total := eng.Position()
	fmt.Printf("\n[%d/%d] %s\n", number, total, card.FrontText)
	if card.ExampleFront != "" {
		fmt.Printf("       %s\n", card.ExampleFront)
	}

	switch eng.Mode() {
	case session.ModeFlip:
		a.prompt("enter to reveal ")
		eng.Reveal()
		fmt.Printf("  -> %s\n", card.BackText)
		correct := a.prompt("did you know it? y/n > ")
		eng.Grade(correct == "y" || correct == "yes")

	case session.ModeMultipleChoice:
		choices := eng.Choices()
		for i, c := range choices {
			fmt.Printf("  %d) %s\n", i+1, c)
		}
		idx, err := strconv.Atoi(a.prompt("answer> "))
		if err != nil || idx < 1 || idx > len(choices) {
			return
		}
		eng.SelectOption(choices[idx-1])
		a.showFeedback(eng, card)
		eng.Advance()

	case session.ModeFill:
		answer := a.prompt("answer> ")
		eng.Submit(answer)
		if showing, _ := eng.Feedback(); !showing {
			return
		}
		a.showFeedback(eng, card)
		eng.Advance()
	}
}

func (a *app) showFeedback(eng *session.Engine, card models.Card) {
	if _, lastCorrect := eng.Feedback(); lastCorrect {
		fmt.Println("  correct!")
	} else {
		fmt.Printf("  wrong, it was: %s\n", card.BackText)
	}
}

func (a *app) printStats() {
	all := a.store.AllCards()
	global := stats.Aggregate(all)

	fmt.Println()
	fmt.Printf("cards studied: %d of %d\n", len(stats.StudiedCards(all)), len(all))
	fmt.Printf("attempts: %d  correct: %d  incorrect: %d  accuracy: %d%%\n",
		global.Attempts, global.Correct, global.Incorrect, global.Accuracy)
	fmt.Printf("sessions completed: %d\n", len(a.store.Sessions()))

	for _, d := range a.store.AllDecks() {
		s := stats.Aggregate(a.store.CardsByDeck(d.ID))
		fmt.Printf("  %-12s attempts=%d accuracy=%d%%\n", d.Name, s.Attempts, s.Accuracy)
	}

	if difficult := stats.DifficultCards(all); len(difficult) > 0 {
		fmt.Println("difficult cards:")
		for _, c := range difficult {
			fmt.Printf("  %s -> %s (%d%%, tier %s)\n", c.FrontText, c.BackText,
				stats.Accuracy(c.Stats.CorrectCount, c.Stats.IncorrectCount), stats.CardTier(c))
		}
	}

	if saved, ok := a.store.LastSavedAt(); ok {
		fmt.Printf("last saved: %s\n", saved.Local().Format("2006-01-02 15:04:05"))
	}
}

func (a *app) reset() {
	if a.prompt("this wipes every card stat and session. type 'reset' to confirm > ") != "reset" {
		fmt.Println("cancelled")
		return
	}
	a.store.ResetAll()
	fmt.Println("all data reset")
}
