package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/billie-coop/propedit/internal/form"
	"github.com/billie-coop/propedit/internal/logger"
)

const secretMask = "********"

func newShowCommand(rt *runtime) *cobra.Command {
	var (
		dir    string
		format string
		reveal bool
	)
	cmd := &cobra.Command{
		Use:   "show --path DIR",
		Short: "Print the form for a server directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}

			a, err := rt.newApp(dir, logger.FromContext(cmd.Context()))
			if err != nil {
				return err
			}
			if err := a.Load(cmd.Context()); err != nil {
				return err
			}
			groups, err := a.Session.GroupsInOrder()
			if err != nil {
				return err
			}

			if format == "json" {
				return writeFormJSON(cmd.OutOrStdout(), a.Store.Path(), groups, reveal)
			}
			return writeFormText(cmd.OutOrStdout(), a.Store.Path(), groups, reveal)
		},
	}
	cmd.Flags().StringVarP(&dir, "path", "p", "", "Minecraft server directory")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print sensitive values")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

func writeFormText(w io.Writer, location string, groups []form.Group, reveal bool) error {
	fmt.Fprintln(w, location)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, g := range groups {
		if len(g.Controls) == 0 {
			continue
		}
		fmt.Fprintf(tw, "\n%s\n", g.Label)
		for _, c := range g.Controls {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.Label, displayValue(c, reveal), controlNote(c))
		}
	}
	return tw.Flush()
}

func displayValue(c form.ControlSpec, reveal bool) string {
	v := c.Value.String()
	switch c.Kind {
	case form.KindBoolean:
		if on, _ := c.Value.AsBool(); on {
			return "on"
		}
		return "off"
	case form.KindEnum:
		if o, ok := c.ActiveOption(); ok {
			return o.Label
		}
		return fmt.Sprintf("%q", v)
	case form.KindMasked:
		if v != "" && !reveal {
			return secretMask
		}
	}
	if v == "" {
		return "-"
	}
	return v
}

func controlNote(c form.ControlSpec) string {
	switch c.Kind {
	case form.KindInteger:
		if !c.Bounded {
			return ""
		}
		note := fmt.Sprintf("%d..%d", c.Min, c.Max)
		if !c.InRange() {
			note += " (out of range)"
		}
		return note
	case form.KindEnum:
		labels := make([]string, len(c.Options))
		for i, o := range c.Options {
			labels[i] = o.Label
		}
		note := strings.Join(labels, " | ")
		if c.ActiveIndex() < 0 {
			note += " (not a choice)"
		}
		return note
	}
	return ""
}

type jsonControl struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Kind    string   `json:"kind"`
	Value   string   `json:"value"`
	Options []string `json:"options,omitempty"`
	Min     *int64   `json:"min,omitempty"`
	Max     *int64   `json:"max,omitempty"`
}

type jsonGroup struct {
	ID       string        `json:"id"`
	Label    string        `json:"label"`
	Controls []jsonControl `json:"controls"`
}

type jsonForm struct {
	Location string      `json:"location"`
	Groups   []jsonGroup `json:"groups"`
}

func writeFormJSON(w io.Writer, location string, groups []form.Group, reveal bool) error {
	out := jsonForm{Location: location, Groups: make([]jsonGroup, 0, len(groups))}
	for _, g := range groups {
		jg := jsonGroup{ID: string(g.ID), Label: g.Label, Controls: make([]jsonControl, 0, len(g.Controls))}
		for _, c := range g.Controls {
			jc := jsonControl{
				Key:   c.Key,
				Label: c.Label,
				Kind:  c.Kind.String(),
				Value: c.Value.String(),
			}
			if c.Kind == form.KindMasked && jc.Value != "" && !reveal {
				jc.Value = secretMask
			}
			for _, o := range c.Options {
				jc.Options = append(jc.Options, o.Value)
			}
			if c.Bounded {
				lo, hi := c.Min, c.Max
				jc.Min, jc.Max = &lo, &hi
			}
			jg.Controls = append(jg.Controls, jc)
		}
		out.Groups = append(out.Groups, jg)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
