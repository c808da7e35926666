package main

// InitCmd writes the default configuration so it can be edited.
type InitCmd struct {
	Path  string `default:"${config_path}" help:"Where to write the configuration file."`
	Force bool   `short:"f" help:"Overwrite an existing file."`
}

func (c *InitCmd) Run(g *Global) error {
	if err := writeConfigFile(c.Path, DefaultConfig(), c.Force); err != nil {
		return err
	}
	g.Logger.Info("Wrote configuration file", "path", c.Path)
	return nil
}
