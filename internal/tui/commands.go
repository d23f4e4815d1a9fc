package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joss/aicost/internal/catalog"
)

// Commands. Catalog fetches are the only asynchronous boundary; each is
// a single attempt bounded by the configured timeout, and each carries
// the id it was issued for so Update can discard stale results.

func fetchServices(reader catalog.Reader, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		services, err := reader.ListServices(ctx)
		if err != nil {
			return servicesErrMsg{err: err}
		}
		return servicesMsg(services)
	}
}

func fetchService(reader catalog.Reader, id string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		svc, err := reader.GetService(ctx, id)
		if err != nil {
			return serviceErrMsg{id: id, err: err}
		}
		return serviceMsg{id: id, svc: svc}
	}
}

func copyToClipboard(url string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{err: clipboard.WriteAll(url)}
	}
}
