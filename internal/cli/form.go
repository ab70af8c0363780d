package cli

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/strataforge/agsi/pkg/codec"
	"github.com/strataforge/agsi/pkg/errors"
	"github.com/strataforge/agsi/pkg/ground"
)

// newFormCmd builds the form command: a sequential terminal form that
// collects the fields of a fresh document and writes it to disk.
func newFormCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "form <output>",
		Short: "Create a document interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())

			model := newFormModel(cfg)
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "run form")
			}

			fm, ok := final.(formModel)
			if !ok || fm.cancelled {
				printInfo("Cancelled")
				return nil
			}

			doc := fm.document()
			if err := codec.WriteFile(args[0], doc); err != nil {
				return err
			}
			printSuccess("Created document %s", doc.File.FileID)
			printFile(args[0])
			return nil
		},
	}
}

// =============================================================================
// formModel - Sequential field entry
// =============================================================================

var (
	formLabelStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(16)
	formActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	formDoneStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	formCursor      = lipgloss.NewStyle().Foreground(colorCyan).Render("▌")
)

type formField struct {
	label       string
	placeholder string
	value       string
}

// formModel is the bubbletea model for the document form.
type formModel struct {
	fields    []formField
	index     int
	done      bool
	cancelled bool
}

func newFormModel(cfg *Config) formModel {
	return formModel{
		fields: []formField{
			{label: "File ID", placeholder: "generated UUID"},
			{label: "Author", placeholder: cfg.DefaultAuthor},
			{label: "Project name", placeholder: "none"},
			{label: "Model ID", placeholder: "MODEL001"},
			{label: "Model name", placeholder: "Ground model"},
		},
	}
}

func (m formModel) Init() tea.Cmd {
	return nil
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "enter":
		if m.index == len(m.fields)-1 {
			m.done = true
			return m, tea.Quit
		}
		m.index++
	case "backspace":
		f := &m.fields[m.index]
		if len(f.value) > 0 {
			runes := []rune(f.value)
			f.value = string(runes[:len(runes)-1])
		}
	default:
		if key.Type == tea.KeyRunes {
			m.fields[m.index].value += string(key.Runes)
		}
	}
	return m, nil
}

func (m formModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("New Document"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("enter: next field  esc: cancel"))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		b.WriteString(formLabelStyle.Render(f.label))
		switch {
		case i == m.index && !m.done:
			b.WriteString(formActiveStyle.Render(f.value) + formCursor)
			if f.value == "" && f.placeholder != "" {
				b.WriteString(StyleDim.Render(" (" + f.placeholder + ")"))
			}
		case f.value != "":
			b.WriteString(formDoneStyle.Render(f.value))
		default:
			b.WriteString(StyleDim.Render("—"))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// document builds the document from the collected fields, applying the
// placeholder defaults for fields left blank.
func (m formModel) document() *ground.Document {
	fileID := m.fields[0].value
	author := m.fields[1].value
	project := m.fields[2].value
	modelID := m.fields[3].value
	modelName := m.fields[4].value

	var doc *ground.Document
	if fileID != "" {
		doc = ground.NewDocument(fileID)
	} else {
		doc = ground.NewDocumentWithGeneratedID()
	}
	doc.File.FileDate = time.Now().UTC().Format("2006-01-02")
	if author == "" {
		author = m.fields[1].placeholder
	}
	doc.File.FileAuthor = author

	if project != "" {
		doc.Project = ground.NewProject("PROJ001", project)
	}

	if modelID == "" {
		modelID = "MODEL001"
	}
	if modelName == "" {
		modelName = "Ground model"
	}
	doc.AddModel(ground.NewGroundModel(modelID, modelName,
		ground.ModelStratigraphic, ground.Dimension3D))
	return doc
}
