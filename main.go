// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/curioswitch/cookingrecipes/internal/auth"
	"github.com/curioswitch/cookingrecipes/internal/catalog"
	"github.com/curioswitch/cookingrecipes/internal/config"
	"github.com/curioswitch/cookingrecipes/internal/handler/commentrecipe"
	"github.com/curioswitch/cookingrecipes/internal/handler/createrecipe"
	"github.com/curioswitch/cookingrecipes/internal/handler/favoriterecipe"
	"github.com/curioswitch/cookingrecipes/internal/handler/getprofile"
	"github.com/curioswitch/cookingrecipes/internal/handler/getrecipe"
	"github.com/curioswitch/cookingrecipes/internal/handler/listrecipes"
	"github.com/curioswitch/cookingrecipes/internal/handler/raterecipe"
	"github.com/curioswitch/cookingrecipes/internal/handler/resetpassword"
	"github.com/curioswitch/cookingrecipes/internal/handler/signin"
	"github.com/curioswitch/cookingrecipes/internal/handler/signout"
	"github.com/curioswitch/cookingrecipes/internal/handler/signup"
	"github.com/curioswitch/cookingrecipes/internal/handler/updateprofile"
	"github.com/curioswitch/cookingrecipes/internal/mutate"
	"github.com/curioswitch/cookingrecipes/internal/session"
	"github.com/curioswitch/cookingrecipes/internal/watch"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("main: create firebase auth client: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	storageClient, err := storage.NewGRPCClient(ctx)
	if err != nil {
		return fmt.Errorf("main: create storage client: %w", err)
	}
	defer func() {
		if err := storageClient.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close storage client", "error", err)
		}
	}()
	publicBucket := conf.Google.Project + "-public"

	authClient, err := auth.NewClient(ctx, fbApp, conf.Firebase.APIKey)
	if err != nil {
		return fmt.Errorf("main: create auth client: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	sessions := session.NewManager(ctx, firestore)
	mutations := mutate.NewCoordinator(firestore)

	recipes := catalog.NewHolder()
	recipeWatcher := watch.NewCatalogWatcher(firestore)
	g.Go(func() error {
		return recipeWatcher.Run(ctx)
	})
	g.Go(func() error {
		recipes.Run(ctx, recipeWatcher.Deliveries())
		return nil
	})

	fbMW := firebaseauth.NewMiddleware(fbAuth)
	mux.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", signup.NewHandler(authClient, firestore, sessions).SignUp)
			r.Post("/signin", signin.NewHandler(authClient, sessions).SignIn)
			r.Post("/resetpassword", resetpassword.NewHandler(authClient).ResetPassword)
			r.With(fbMW).Post("/signout", signout.NewHandler(authClient, sessions).SignOut)
		})

		r.Group(func(r chi.Router) {
			r.Use(fbMW)

			r.Get("/profile", getprofile.NewHandler(sessions).GetProfile)
			r.Put("/profile", updateprofile.NewHandler(firestore, sessions).UpdateProfile)

			r.Get("/recipes", listrecipes.NewHandler(recipes, sessions).ListRecipes)
			r.Post("/recipes", createrecipe.NewHandler(firestore, storageClient, publicBucket, sessions).CreateRecipe)
			r.Get("/recipes/{key}", getrecipe.NewHandler(firestore, sessions).GetRecipe)
			r.Post("/recipes/{key}/rating", raterecipe.NewHandler(firestore, mutations, sessions).RateRecipe)
			r.Post("/recipes/{key}/favorite", favoriterecipe.NewHandler(firestore, mutations, sessions).FavoriteRecipe)
			r.Post("/recipes/{key}/comments", commentrecipe.NewHandler(firestore, mutations, sessions).CommentRecipe)
		})
	})

	g.Go(func() error {
		if err := server.Start(ctx, s); err != nil {
			return fmt.Errorf("main: starting server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
