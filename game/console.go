package game

import "github.com/chzyer/readline"

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// NewConsole opens an interactive line reader for human moves.
func NewConsole(historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:              "\033[31mmove>\033[0m ",
		HistoryFile:         historyFile,
		EOFPrompt:           "quit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
}
