package printer

import (
	"github.com/slok/swemas/internal/llm"
	"github.com/slok/swemas/internal/model"
)

// Printer knows how to print run information in different formats.
type Printer interface {
	PrintRunList(runs []model.Run) error
	PrintRun(run model.Run) error
	PrintTools(tools []llm.ToolSchema) error
	PrintMessage(msg string) error
}

var (
	_ Printer = &TablePrinter{}
	_ Printer = &JSONPrinter{}
)
