package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
)

// renderMarkdown writes md through a glamour terminal renderer, falling
// back to the raw markdown when rendering fails (e.g. no usable terminal).
func renderMarkdown(w io.Writer, md string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, printing raw content")
		_, err = fmt.Fprintln(w, md)
		return err
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, printing raw content")
		_, err = fmt.Fprintln(w, md)
		return err
	}

	_, err = fmt.Fprint(w, rendered)
	return err
}
