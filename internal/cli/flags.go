package cli

func (c *RootCommand) initFlags() {
	c.PersistentFlags().StringVarP(
		&c.Options.ConfigPath,
		"config",
		"c",
		"",
		"Path to the .env configuration file",
	)
	c.PersistentFlags().StringVarP(
		&c.Options.BookPath,
		"book",
		"b",
		"",
		"Polyglot opening book; overrides FENKEY_BOOK_PATH",
	)
}
