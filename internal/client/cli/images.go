package cli

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
)

// openImage is a test seam for opening the image file named by the user.
var openImage = func(path string) (io.ReadCloser, error) { return os.Open(path) }

// uploadImage prompts for a local file path and streams the file through the
// given upload function. The merged profile (with the new image URL) lands in
// the session store via the users service.
func (a *App) uploadImage(ctx context.Context, prompt string, upload func(context.Context, string, io.Reader) error) error {
	path, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return err
	}

	f, err := openImage(path)
	if err != nil {
		log.Printf("cannot open file: %v", err)
		return err
	}
	defer f.Close()

	if err := upload(ctx, filepath.Base(path), f); err != nil {
		log.Printf("upload failed: %v", err)
		return err
	}

	printlnFn("Image updated.")
	return nil
}

// SetAvatar uploads a new avatar image.
func (a *App) SetAvatar(ctx context.Context) error {
	return a.uploadImage(ctx, "Path to avatar image", a.users.UpdateAvatar)
}

// SetBackground uploads a new profile background image.
func (a *App) SetBackground(ctx context.Context) error {
	return a.uploadImage(ctx, "Path to background image", a.users.UpdateBackground)
}

// DeleteAvatar removes the avatar.
func (a *App) DeleteAvatar(ctx context.Context) error {
	if err := a.users.DeleteAvatar(ctx); err != nil {
		log.Printf("avatar removal failed: %v", err)
		return err
	}
	printlnFn("Avatar removed.")
	return nil
}

// DeleteBackground removes the profile background.
func (a *App) DeleteBackground(ctx context.Context) error {
	if err := a.users.DeleteBackground(ctx); err != nil {
		log.Printf("background removal failed: %v", err)
		return err
	}
	printlnFn("Background removed.")
	return nil
}
