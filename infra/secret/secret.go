package secret

import (
	"fmt"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/secretmanager"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// SetupSheetsKey stores a Sheets service account key as secretID and lets
// apiSA read that one secret. It returns the secret id for
// SHEETSCREDENTIALSSECRET.
func SetupSheetsKey(ctx *pulumi.Context,
	prov *gcp.Provider,
	apiSA *serviceaccount.Account,
	secretID string,
	key pulumi.StringInput) (pulumi.StringOutput, error) {
	api, err := projects.NewService(ctx, "secretManagerService", &projects.ServiceArgs{
		Service: pulumi.String("secretmanager.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return pulumi.StringOutput{}, err
	}

	s, err := secretmanager.NewSecret(ctx, "sheetsKeySecret", &secretmanager.SecretArgs{
		SecretId: pulumi.String(secretID),
		Replication: &secretmanager.SecretReplicationArgs{
			Auto: &secretmanager.SecretReplicationAutoArgs{},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn([]pulumi.Resource{api}),
	)
	if err != nil {
		return pulumi.StringOutput{}, err
	}

	_, err = secretmanager.NewSecretVersion(ctx, "sheetsKeySecretVersion", &secretmanager.SecretVersionArgs{
		Secret:     s.ID(),
		SecretData: key,
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return pulumi.StringOutput{}, err
	}

	// Scoped to the key secret, not the project.
	_, err = secretmanager.NewSecretIamMember(ctx, "sheetsKeyAccessor", &secretmanager.SecretIamMemberArgs{
		SecretId: s.SecretId,
		Role:     pulumi.String("roles/secretmanager.secretAccessor"),
		Member: apiSA.Email.ApplyT(func(email string) string {
			return fmt.Sprintf("serviceAccount:%s", email)
		}).(pulumi.StringOutput),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return pulumi.StringOutput{}, err
	}

	return s.SecretId, nil
}
