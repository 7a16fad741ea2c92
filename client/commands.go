package client

import (
	"context"

	"github.com/envyctl/go-envy/commands"
	"github.com/envyctl/go-envy/protocol"
)

// Typed dispatch wrappers over Send. Query-style wrappers wait for
// their acknowledgement; Heartbeat and Bye are fire-and-forget.

// Heartbeat sends a keepalive without waiting for the acknowledgement.
func (c *Client) Heartbeat(ctx context.Context) error {
	_, err := c.Send(ctx, commands.Heartbeat(), false)
	return err
}

// Bye announces a clean disconnect without waiting for the
// acknowledgement.
func (c *Client) Bye(ctx context.Context) error {
	_, err := c.Send(ctx, commands.Bye(), false)
	return err
}

// PowerOff powers the device down.
func (c *Client) PowerOff(ctx context.Context) (protocol.Message, error) {
	return c.Send(ctx, commands.PowerOff(), true)
}

// Standby puts the device into standby.
func (c *Client) Standby(ctx context.Context) (protocol.Message, error) {
	return c.Send(ctx, commands.Standby(), true)
}

// Restart restarts the device.
func (c *Client) Restart(ctx context.Context) (protocol.Message, error) {
	return c.Send(ctx, commands.Restart(), true)
}

// ReloadSoftware reloads the device software.
func (c *Client) ReloadSoftware(ctx context.Context) (protocol.Message, error) {
	return c.Send(ctx, commands.ReloadSoftware(), true)
}

// OpenMenu opens an on-screen menu.
func (c *Client) OpenMenu(ctx context.Context, menu commands.MenuName) (protocol.Message, error) {
	return c.Send(ctx, commands.OpenMenu(menu), true)
}

// CloseMenu closes the on-screen menu.
func (c *Client) CloseMenu(ctx context.Context) (protocol.Message, error) {
	return c.Send(ctx, commands.CloseMenu(), true)
}

// KeyPress sends a remote-control button press.
func (c *Client) KeyPress(ctx context.Context, button commands.RemoteButton) (protocol.Message, error) {
	return c.Send(ctx, commands.KeyPress(button), true)
}

// KeyHold sends a remote-control button hold.
func (c *Client) KeyHold(ctx context.Context, button commands.RemoteButton) (protocol.Message, error) {
	return c.Send(ctx, commands.KeyHold(button), true)
}

// DisplayMessage shows an on-screen message.
func (c *Client) DisplayMessage(ctx context.Context, timeoutSeconds int, text string) (protocol.Message, error) {
	return c.Send(ctx, commands.DisplayMessage(timeoutSeconds, text), true)
}

// GetIncomingSignalInfo requests the incoming signal description; the
// reply notification resolves the call.
func (c *Client) GetIncomingSignalInfo(ctx context.Context) (protocol.Message, error) {
	return c.Send(ctx, commands.GetIncomingSignalInfo(), true)
}

// GetOutgoingSignalInfo requests the outgoing signal description.
func (c *Client) GetOutgoingSignalInfo(ctx context.Context) (protocol.Message, error) {
	return c.Send(ctx, commands.GetOutgoingSignalInfo(), true)
}

// GetAspectRatio requests the detected content aspect ratio.
func (c *Client) GetAspectRatio(ctx context.Context) (protocol.Message, error) {
	return c.Send(ctx, commands.GetAspectRatio(), true)
}

// GetMaskingRatio requests the screen masking ratio.
func (c *Client) GetMaskingRatio(ctx context.Context) (protocol.Message, error) {
	return c.Send(ctx, commands.GetMaskingRatio(), true)
}

// GetTemperatures requests component temperatures.
func (c *Client) GetTemperatures(ctx context.Context) (protocol.Message, error) {
	return c.Send(ctx, commands.GetTemperatures(), true)
}

// GetMacAddress requests the device MAC address.
func (c *Client) GetMacAddress(ctx context.Context) (protocol.Message, error) {
	return c.Send(ctx, commands.GetMacAddress(), true)
}

// SetAspectRatioMode selects the aspect ratio handling mode.
func (c *Client) SetAspectRatioMode(ctx context.Context, mode commands.AspectRatioMode) (protocol.Message, error) {
	return c.Send(ctx, commands.SetAspectRatioMode(mode), true)
}

// ActivateProfile activates a profile by group and index.
func (c *Client) ActivateProfile(ctx context.Context, profileGroup string, profileIndex int) (protocol.Message, error) {
	return c.Send(ctx, commands.ActivateProfile(profileGroup, profileIndex), true)
}

// GetActiveProfile requests the active profile of a group.
func (c *Client) GetActiveProfile(ctx context.Context, profileGroup string) (protocol.Message, error) {
	return c.Send(ctx, commands.GetActiveProfile(profileGroup), true)
}

// QueryOption requests a single option value.
func (c *Client) QueryOption(ctx context.Context, optionIDOrPath string) (protocol.Message, error) {
	return c.Send(ctx, commands.QueryOption(optionIDOrPath), true)
}

// ChangeOption sets an option value at a hierarchical path.
func (c *Client) ChangeOption(ctx context.Context, optionIDPath string, value protocol.Scalar) (protocol.Message, error) {
	return c.Send(ctx, commands.ChangeOption(optionIDPath, value), true)
}

// ToggleOption toggles a named option.
func (c *Client) ToggleOption(ctx context.Context, optionName string) (protocol.Message, error) {
	return c.Send(ctx, commands.ToggleOption(optionName), true)
}

// ToneMapOn enables tone mapping.
func (c *Client) ToneMapOn(ctx context.Context) (protocol.Message, error) {
	return c.Send(ctx, commands.ToneMapOn(), true)
}

// ToneMapOff disables tone mapping.
func (c *Client) ToneMapOff(ctx context.Context) (protocol.Message, error) {
	return c.Send(ctx, commands.ToneMapOff(), true)
}

// Hotplug issues an HDMI hotplug.
func (c *Client) Hotplug(ctx context.Context) (protocol.Message, error) {
	return c.Send(ctx, commands.Hotplug(), true)
}

// RefreshLicenseInfo refreshes the license info.
func (c *Client) RefreshLicenseInfo(ctx context.Context) (protocol.Message, error) {
	return c.Send(ctx, commands.RefreshLicenseInfo(), true)
}

// Force1080p60Output forces the output to 1080p60.
func (c *Client) Force1080p60Output(ctx context.Context) (protocol.Message, error) {
	return c.Send(ctx, commands.Force1080p60Output(), true)
}
