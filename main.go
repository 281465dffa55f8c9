package main

import (
	"github.com/lehigh-university-libraries/iga/cmd"

	// Register format plugins
	_ "github.com/lehigh-university-libraries/iga/format/cff"
	_ "github.com/lehigh-university-libraries/iga/format/codemeta"
	_ "github.com/lehigh-university-libraries/iga/format/invenio"
)

func main() {
	cmd.Execute()
}
