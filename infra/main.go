package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/outlet-dashboard/infra/cloudrun"
	"github.com/GregMSThompson/outlet-dashboard/infra/docker"
	"github.com/GregMSThompson/outlet-dashboard/infra/firestore"
	"github.com/GregMSThompson/outlet-dashboard/infra/identity"
	"github.com/GregMSThompson/outlet-dashboard/infra/provider"
	"github.com/GregMSThompson/outlet-dashboard/infra/sheets"
	"github.com/GregMSThompson/outlet-dashboard/infra/vertex"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// every resource below is labelled app=outlet-dashboard
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// firebase sign-in, only when the API verifies tokens
		deps, err := identity.SetupIdentity(ctx, prov)
		if err != nil {
			return err
		}

		// enable firestore, create the database and the chat history TTL policy
		chatDB, err := firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		sheetsSvc, err := sheets.SetupSheets(ctx, prov)
		if err != nil {
			return err
		}

		vertexSvc, err := vertex.SetupVertex(ctx, prov)
		if err != nil {
			return err
		}

		// artifact registry for the api image
		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		deps = append(deps, chatDB, sheetsSvc, vertexSvc, repo)
		_, err = cloudrun.SetupCloudRun(ctx, prov, deps...)
		if err != nil {
			return err
		}

		return nil
	})
}
