/*
 * Copyright (c) 2025, FaithMatch (https://faithmatch.dev).
 *
 * FaithMatch licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/faithmatch/match-data-service/internal/system/config"
	"github.com/faithmatch/match-data-service/internal/system/constants"
	mongodb "github.com/faithmatch/match-data-service/internal/system/database/mongo"
	"github.com/faithmatch/match-data-service/internal/system/locks"
	"github.com/faithmatch/match-data-service/internal/system/log"
	"github.com/faithmatch/match-data-service/internal/system/managers"
)

const configFile = "/repository/conf/deployment.yaml"

func main() {
	mdsHome := getMDSHome()

	envFiles, err := filepath.Glob("config/*.env")
	if err == nil && len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	// Load the configuration file
	mdsConfig, err := config.LoadConfig(mdsHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	// Initialize runtime configurations.
	if err := config.InitializeMDSRuntime(mdsHome, mdsConfig); err != nil {
		stdlog.Fatalf("Failed to initialize runtime: %v", err)
	}

	// Initialize logger
	if err := log.Init(mdsConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	// Connect the document store and set up the distributed lock.
	mongoInstance, err := mongodb.ConnectMongoDB(mdsConfig.DocumentStore.URI, mdsConfig.DocumentStore.Database)
	if err != nil {
		logger.Fatal("Failed to connect to document store", log.Error(err))
	}
	locks.InitLocks(mongoInstance.Database)

	serverAddr := fmt.Sprintf("%s:%d", mdsConfig.Addr.Host, mdsConfig.Addr.Port)
	mux := enableCORS(initMultiplexer())

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.Error(err))
	}
	logger.Info("Match data service started", log.String("address", serverAddr))

	server := &http.Server{Handler: mux}
	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Fatal("Failed to register the services", log.Error(err))
	}

	return mux
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getMDSHome() string {

	projectHomeFlag := flag.String("mdsHome", "", "Path to the match data service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		return *projectHomeFlag
	}

	dir, err := os.Getwd()
	if err != nil {
		stdlog.Fatalf("Failed to get current working directory: %v", err)
	}
	return dir
}
