// Command visitorpass runs the visitor pass API and its maintenance jobs.
//
// @title                       Visitor Pass API
// @version                     1.0
// @description                 Visitor registration, appointment approval, pass issuance and checkpoint logging.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
