/*
Package config loads, validates and resolves assetrc configuration.

	            +----------------+
	            | AssetrcConfig  |
	            |  (as written)  |
	            +-------+--------+
	                    |
	      +-------------+-------------+
	      |             |             |
	+-----+-----+ +-----+-----+ +-----+-----+
	|   YAML    | |    HCL    | |   JSON    |
	|  Parser   | |  Parser   | |  Parser   |
	+-----------+ +-----------+ +-----------+
	                    |
	                    v
	            +----------------+
	            |    Pipeline    |
	            |  (immutable)   |
	            +----------------+

🎯 Purpose:
- Reads .assetrc.hcl / .assetrc.yaml / .assetrc.json
- Validates app names, layout overrides, glob patterns and vendor sources
- Resolves defaults into a Pipeline value that operations receive by value

🔄 Flow:
1. Load picks a parser by file extension
2. The parser decodes strictly (unknown fields are errors)
3. Validate reports the first problem
4. Build resolves the layout, the enabled tasks and the project root

🔍 Example:

	cfg, err := config.Load(ctx, ".assetrc.hcl")
	if err != nil {
		return err
	}

	pipeline, err := config.Build(cfg, "")
	if err != nil {
		return err
	}

	for _, app := range pipeline.Apps {
		paths := pipeline.Layout.Paths(app)
		fmt.Println(paths.Static.Javascripts)
	}

In HCL files the `app` variable evaluates to the placeholder token, so
"${app}/assets" and "%app/assets" are the same template.
*/
package config
