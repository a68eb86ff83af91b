package tui

import (
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
	"github.com/disputedesk/disputedesk-terminal/pkg/scan"
	"github.com/disputedesk/disputedesk-terminal/pkg/templates"
)

type sessionSavedMsg struct {
	err error
}

type historyMsg struct {
	err error
}

type templateSavedMsg struct {
	template models.Template
	ack      templates.Ack
	err      error
}

type scanDoneMsg struct {
	outcome scan.Outcome
}

type reportChangedMsg struct{}

type reportReloadedMsg struct {
	report *models.Report
	err    error
}
