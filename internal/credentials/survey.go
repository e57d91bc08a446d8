// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package credentials

import (
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

var _ Prompter = &SurveyPrompter{}

// SurveyPrompter asks questions on an interactive terminal.
type SurveyPrompter struct {
	options []survey.AskOpt
}

// NewSurveyPrompter returns a Prompter reading answers from in and drawing the questions on out.
func NewSurveyPrompter(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) *SurveyPrompter {
	return &SurveyPrompter{
		options: []survey.AskOpt{
			survey.WithStdio(in, out, errOut),
		},
	}
}

// Input implements Prompter.
func (p *SurveyPrompter) Input(message string) (string, error) {
	var answer string
	prompt := &survey.Input{
		Message: message,
	}

	options := append([]survey.AskOpt{survey.WithValidator(survey.Required)}, p.options...)
	if err := survey.AskOne(prompt, &answer, options...); err != nil {
		return "", err
	}

	return answer, nil
}

// Password implements Prompter.
func (p *SurveyPrompter) Password(message string) (string, error) {
	var answer string
	prompt := &survey.Password{
		Message: message,
	}

	if err := survey.AskOne(prompt, &answer, p.options...); err != nil {
		return "", err
	}

	return answer, nil
}
