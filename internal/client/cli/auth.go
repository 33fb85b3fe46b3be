package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/docsync/internal/common"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// Register prompts for a device ID and secret and attempts to create the
// device on the endpoint.
//
// On success it prints "Success!" and returns nil. The secret byte slice
// is wiped before returning. Any I/O or service error is returned unchanged.
func (a *App) Register(ctx context.Context) error {
	deviceID, err := getSimpleText(a.reader, "Enter device ID", os.Stdout)
	if err != nil {
		return err
	}

	secret, err := getSecret(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	if err := a.apiClient.RegisterDevice(ctx, deviceID, secret); err != nil {
		log.Printf("Registration unsuccessfull: %s", err.Error())
		return err
	}

	fmt.Println("Success!")
	return nil
}

// Login prompts for credentials and obtains an access token for uploads.
// Capturing and listing documents never requires a login; only sync does.
//
// On success it remembers the device ID for the prompt and switches to
// online mode. The secret is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	deviceID, err := getSimpleText(a.reader, "Enter device ID", os.Stdout)
	if err != nil {
		return err
	}

	secret, err := getSecret(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	if err := a.apiClient.Login(ctx, deviceID, secret); err != nil {
		log.Printf("Login unsuccessfull: %s", err.Error())
		return err
	}

	log.Printf("Login successfull")
	a.deviceID = deviceID
	a.setMode(ModeOnline)
	return nil
}
