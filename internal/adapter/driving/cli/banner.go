package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/diillson/paidmedia-dashboard-go/pkg/version"
)

// displayWelcomeBanner prints the banner and the running version.
func displayWelcomeBanner(versionStr string) {
	banner := `
         ____       _     _   __  __          _ _
        |  _ \ __ _(_) __| | |  \/  | ___  __| (_) __ _
        | |_) / _' | |/ _' | | |\/| |/ _ \/ _' | |/ _' |
        |  __/ (_| | | (_| | | |  | |  __/ (_| | | (_| |
        |_|   \__,_|_|\__,_| |_|  |_|\___|\__,_|_|\__,_|
        `
	magenta := color.New(color.FgMagenta, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(magenta(banner))
	if versionStr == "" {
		versionStr = version.FormatVersion()
	}
	fmt.Println(blue(fmt.Sprintf("Paid Media Dashboard CLI (v%s)", versionStr)))
}
