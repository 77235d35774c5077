package commands

import (
	"context"
	"fmt"
	"os"
	"sort"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// OptionCmd groups the option subcommands.
type OptionCmd struct {
	Get  OptionGetCmd  `cmd:"" help:"Get an option value"`
	Set  OptionSetCmd  `cmd:"" help:"Set an option value"`
	List OptionListCmd `cmd:"" help:"List all options"`
}

// OptionGetCmd prints one option value.
type OptionGetCmd struct {
	Database string `arg:"" help:"Path of the blog database"`
	Name     string `arg:"" help:"Option name, e.g. blog.page_size"`
}

func (c *OptionGetCmd) Run(_ *Global) error {
	st, err := openExisting(c.Database)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	value, err := st.Option(context.Background(), c.Name)
	if err != nil {
		return err
	}
	fmt.Println(config.FormatValue(value))
	return nil
}

// OptionSetCmd sets an option to an integer, real, text or binary value.
// With no value flag the option is cleared.
type OptionSetCmd struct {
	Database string   `arg:"" help:"Path of the blog database"`
	Name     string   `arg:"" help:"Option name"`
	Integer  *int64   `help:"Integer value"`
	Real     *float64 `help:"Real value"`
	String   *string  `help:"Text value"`
	Binary   string   `help:"Binary value read from file" type:"existingfile"`
}

func (c *OptionSetCmd) Run(_ *Global) error {
	var value any
	switch {
	case c.Integer != nil:
		value = *c.Integer
	case c.Real != nil:
		value = *c.Real
	case c.String != nil:
		value = *c.String
	case c.Binary != "":
		data, err := os.ReadFile(c.Binary)
		if err != nil {
			return fmt.Errorf("read binary value: %w", err)
		}
		value = data
	}

	if err := config.CheckKind(c.Name, value); err != nil {
		return err
	}

	st, err := openExisting(c.Database)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	return st.SetOption(context.Background(), c.Name, value)
}

// OptionListCmd prints all option names and values.
type OptionListCmd struct {
	Database string `arg:"" help:"Path of the blog database"`
}

func (c *OptionListCmd) Run(_ *Global) error {
	st, err := openExisting(c.Database)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	options, err := st.Options(context.Background())
	if err != nil {
		return err
	}

	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s = %s\n", name, config.FormatValue(options[name]))
	}
	return nil
}
