package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecoblock/ecoblock/src/keystore"
	"github.com/ecoblock/ecoblock/src/node"
	"github.com/ecoblock/ecoblock/src/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//NewRunCmd returns the command that starts an EcoBlock node
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run node",
		RunE:  runNode,
	}
	AddRunFlags(cmd)
	return cmd
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runNode(cmd *cobra.Command, args []string) error {
	if _config.GossipInterval <= 0 {
		return fmt.Errorf("gossip-interval must be positive, got %v", _config.GossipInterval)
	}

	logger := _config.Node.Logger()

	guard := node.NewGuard(logger)
	lifecycle := node.NewLifecycle(guard, &_config.Node)

	id, err := startNode(lifecycle, _config.Node.DataDir)
	if err != nil {
		logger.WithError(err).Error("Cannot start node")
		return err
	}

	logger.WithField("node", id).Info("Node started")

	var srv *service.Service
	if !_config.Node.NoService {
		srv = service.NewService(_config.Node.ServiceAddr, guard, logger)
		go srv.Serve()
	}

	//Prepare sigCh to relay SIGINT and SIGTERM system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(_config.GossipInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ticker.C:
			gossip(guard, logger)
		case <-sigCh:
			break loop
		}
	}

	logger.Info("Shutting down")

	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Error("Stopping service")
		}
	}

	if err := guard.SaveTopology(_config.Node.TopologyFile()); err != nil {
		logger.WithError(err).Error("Saving topology")
	}

	return guard.Close()
}

// startNode loads the node in directory, creating it first if needed.
func startNode(lifecycle *node.Lifecycle, directory string) (string, error) {
	initialized, err := lifecycle.NodeIsInitialized(directory)
	if err != nil {
		return "", err
	}

	if initialized {
		return lifecycle.LoadLocalNode(directory)
	}

	id, err := lifecycle.CreateLocalNode(directory)
	// lost a race against another process creating the same node
	if keystore.Is(err, keystore.AlreadyInitialized) {
		return lifecycle.LoadLocalNode(directory)
	}
	return id, err
}

// gossip drains one round of blocks. Delivering them is up to the transport,
// which is not part of this binary; the round is only logged.
func gossip(guard *node.Guard, logger *logrus.Entry) {
	round := guard.NextGossipRound(0, _config.Node.GossipFanout)
	if len(round.Blocks) == 0 {
		return
	}

	logger.WithFields(logrus.Fields{
		"blocks":  len(round.Blocks),
		"targets": round.Targets,
	}).Debug("Gossip round")
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

//AddRunFlags adds flags to the Run command
func AddRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("moniker", _config.Node.Moniker, "Optional name")

	// Service
	cmd.Flags().Bool("no-service", _config.Node.NoService, "Disable HTTP service")
	cmd.Flags().StringP("service-listen", "s", _config.Node.ServiceAddr, "Listen IP:Port for HTTP service")

	// Store
	cmd.Flags().Bool("store", _config.Node.Store, "Use badgerDB instead of in-mem DB")
	cmd.Flags().String("db", _config.Node.DatabaseDir, "Dabatabase directory")

	// Gossip
	cmd.Flags().Int("gossip-fanout", _config.Node.GossipFanout, "Number of peers a block is pushed to")
	cmd.Flags().Int("gossip-queue", _config.Node.GossipQueue, "Max number of blocks waiting to be gossiped")
	cmd.Flags().Duration("gossip-interval", _config.GossipInterval, "Time between gossip rounds")
}
