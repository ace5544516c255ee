package core_test

import (
	"fmt"
	"log"

	"github.com/castlekit/castle/pkg/core"
)

func ExampleEngine_Scan() {
	eng, err := core.NewEngine()
	if err != nil {
		log.Fatal(err)
	}
	unit := core.ScanUnit{
		Path: "deploy.env",
		Data: []byte("OPENCLAW_GATEWAY_TOKEN=\"abcdef1234\"\n"),
	}
	for _, f := range eng.Scan(unit) {
		fmt.Printf("%s %s line %d col %d\n", f.SecretType, f.Rule, f.Line, f.Column)
	}
	// Output: Castle/OpenClaw Secret openclaw_gateway_token line 1 col 1
}
