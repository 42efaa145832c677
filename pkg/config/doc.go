/*
Package config manages configuration parsing and validation for asbuilt.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	    +---------+----+----+---------+
	    |         |         |         |
	+---+---+ +---+---+ +---+---+ +---+---+
	| YAML  | | TOML  | | JSON  | |  HCL  |
	| Parser| | Parser| | Parser| | Parser|
	+-------+ +-------+ +-------+ +-------+

🎯 Purpose:
- Manages configuration loading and parsing
- Validates configuration values and applies defaults
- Provides type-safe config access
- Supports multiple config formats

🔄 Flow:
1. Reads configuration from file
2. Parses format-specific syntax
3. Validates configuration values
4. Provides validated config to other packages

⚡ Key Responsibilities:
- Input/output path configuration (no hard-coded roots anywhere else)
- Matching knobs: title prefix, section marker, candidate extensions
- Default value management
- Format abstraction

📝 Design Philosophy:
The config package is the source of truth for all configuration. Every
directory the pipeline touches is injected through it, so the matching and
copy logic stays free of environment assumptions.

🔍 Example:

	cfg, err := config.Load(ctx, "asbuilt.yaml")
	if err != nil {
		return err
	}
	fmt.Println(cfg.OutputDir)
*/
package config
