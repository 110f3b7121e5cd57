package tui

import (
	"fmt"
	"io"

	"github.com/RichardoC/askbox/internal/models"
	"github.com/RichardoC/askbox/internal/widget"
)

// Console is a line oriented set of widget bindings for non-interactive use.
// Messages go to Out as "Label: text"; the busy indicator goes to Status.
type Console struct {
	Out    io.Writer
	Status io.Writer
}

func (c *Console) Bindings() widget.Bindings {
	return widget.Bindings{Log: c, Input: c, Submit: c}
}

func (c *Console) ShowsPlaceholder() bool { return false }

func (c *Console) Clear() {}

func (c *Console) Append(msg models.Message) {
	fmt.Fprintf(c.Out, "%s: %s\n", msg.Origin.Label(), msg.Text)
}

func (c *Console) ScrollToBottom() {}

func (c *Console) ClearInput() {}

func (c *Console) SetBusy(busy bool) {
	if c.Status == nil {
		return
	}
	if busy {
		fmt.Fprint(c.Status, "Thinking...")
	} else {
		fmt.Fprint(c.Status, "\r\033[K")
	}
}
