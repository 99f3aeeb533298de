// expctl is a command line client for the experiment registry API.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/fhelabs/experiment-registry/api"
	"github.com/fhelabs/experiment-registry/cmd/flags"
)

var flagName = &cli.StringFlag{
	Name:     "name",
	Required: true,
	Usage:    "experiment name",
}
var flagQuestions = &cli.StringFlag{
	Name:     "questions",
	Required: true,
	Usage:    "question set, free text or JSON",
}
var flagParticipantInfo = &cli.StringFlag{
	Name:  "participant-info",
	Usage: "participant details to include in the encrypted payload",
}

func main() {
	app := &cli.App{
		Name:  "expctl",
		Usage: "Manage experiments in the registry",
		Flags: []cli.Flag{
			flags.ServerAddrFlag,
		},
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Submit a new experiment",
				Flags: []cli.Flag{
					flagName,
					flagQuestions,
					flagParticipantInfo,
				},
				Action: func(cCtx *cli.Context) error {
					client := newClient(cCtx)
					id, err := client.CreateExperiment(cCtx.Context, &api.CreateExperimentRequest{
						ExperimentName:  cCtx.String(flagName.Name),
						QuestionSet:     cCtx.String(flagQuestions.Name),
						ParticipantInfo: cCtx.String(flagParticipantInfo.Name),
					})
					if err != nil {
						return err
					}
					fmt.Println(id)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List all experiments, newest first",
				Action: func(cCtx *cli.Context) error {
					client := newClient(cCtx)
					experiments, err := client.ListExperiments(cCtx.Context)
					if err != nil {
						return err
					}
					return printJSON(experiments)
				},
			},
			{
				Name:      "get",
				Usage:     "Fetch one experiment by id",
				ArgsUsage: "<id>",
				Action: func(cCtx *cli.Context) error {
					client := newClient(cCtx)
					exp, err := client.GetExperiment(cCtx.Context, requireID(cCtx))
					if err != nil {
						return err
					}
					return printJSON(exp)
				},
			},
			{
				Name:      "analyze",
				Usage:     "Mark an experiment as analyzed",
				ArgsUsage: "<id>",
				Action: func(cCtx *cli.Context) error {
					client := newClient(cCtx)
					return client.AnalyzeExperiment(cCtx.Context, requireID(cCtx))
				},
			},
			{
				Name:      "archive",
				Usage:     "Archive an experiment",
				ArgsUsage: "<id>",
				Action: func(cCtx *cli.Context) error {
					client := newClient(cCtx)
					return client.ArchiveExperiment(cCtx.Context, requireID(cCtx))
				},
			},
			{
				Name:  "status",
				Usage: "Show the transaction notifier state",
				Action: func(cCtx *cli.Context) error {
					client := newClient(cCtx)
					status, err := client.TxStatus(cCtx.Context)
					if err != nil {
						return err
					}
					return printJSON(status)
				},
			},
			{
				Name:  "availability",
				Usage: "Probe the backing store",
				Action: func(cCtx *cli.Context) error {
					client := newClient(cCtx)
					avail, err := client.StoreAvailability(cCtx.Context)
					if err != nil {
						return err
					}
					return printJSON(avail)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newClient(cCtx *cli.Context) *api.Client {
	return api.NewClient(cCtx.String(flags.ServerAddrFlag.Name))
}

func requireID(cCtx *cli.Context) string {
	id := cCtx.Args().First()
	if id == "" {
		log.Fatal("experiment id argument is required")
	}
	return id
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
