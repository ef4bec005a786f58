//go:build conntest

package conntest

import (
	"testing"
)

func TestStandardConnection_UserPassword(t *testing.T) {
	config := parseConnString(t, stdContainer)
	loadSucceeds(t, config)
}

func TestStandardConnection_WrongPassword(t *testing.T) {
	config := parseConnString(t, stdContainer)
	config.Password = "definitely-wrong-password"

	connectFails(t, config)
}

func TestStandardConnection_UnknownDatabase(t *testing.T) {
	config := parseConnString(t, stdContainer)
	config.Database = "myload_no_such_db"

	connectFails(t, config)
}
