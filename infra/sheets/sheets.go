package sheets

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// SetupSheets enables the Sheets API. The spreadsheets themselves must be
// shared with the API service account (or the key stored in Secret Manager).
func SetupSheets(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "sheets", &projects.ServiceArgs{
		Service: pulumi.String("sheets.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}
