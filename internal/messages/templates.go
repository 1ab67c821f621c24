package messages

import (
	"fmt"

	"github.com/PratikDhanave/event-feed-service/internal/models"
)

type byStatus = map[models.Status]Template

// templates maps action and status to a renderer. Anything missing falls
// back to Fallback.
var templates = map[models.Action]byStatus{
	"account_update": {
		models.StatusNotification: static("Your account settings have been updated."),
	},
	"account_settings_update": {
		models.StatusNotification: static("Your account settings have been updated."),
	},
	"backups_enable": {
		models.StatusNotification: labelled("Backups have been enabled for %s."),
	},
	"backups_cancel": {
		models.StatusNotification: labelled("Backups have been cancelled for %s."),
	},
	"backups_restore": {
		models.StatusScheduled: labelled("Backup restoration scheduled for %s."),
		models.StatusStarted:   labelled("Backup restoration started for %s."),
		models.StatusFailed:    labelled("Backup restoration failed for %s."),
		models.StatusFinished:  labelled("Backup restoration completed for %s."),
	},
	"disk_create": {
		models.StatusScheduled: secondaryOn("Disk", "is being added to %s.", "A disk is being added to %s."),
		models.StatusStarted:   secondaryOn("Disk", "is being added to %s.", "A disk is being added to %s."),
		models.StatusFailed:    secondaryOn("Disk", "could not be added to %s.", "A disk could not be added to %s."),
		models.StatusFinished:  secondaryOn("Disk", "has been added to %s.", "A disk has been added to %s."),
	},
	"disk_delete": {
		models.StatusScheduled: secondaryOn("Disk", "on %s is scheduled for deletion.", "A disk on %s is scheduled for deletion."),
		models.StatusFailed:    secondaryOn("Disk", "on %s could not be deleted.", "A disk on %s could not be deleted."),
		models.StatusFinished:  secondaryOn("Disk", "on %s has been deleted.", "A disk on %s has been deleted."),
	},
	"disk_resize": {
		models.StatusScheduled: labelled("A disk on %s is scheduled for resizing."),
		models.StatusStarted:   labelled("A disk on %s is being resized."),
		models.StatusFailed:    labelled("A disk on %s could not be resized."),
		models.StatusFinished:  labelled("A disk on %s has been resized."),
	},
	"domain_create": {
		models.StatusNotification: labelled("Domain %s has been created."),
	},
	"domain_update": {
		models.StatusNotification: labelled("Domain %s has been updated."),
	},
	"domain_delete": {
		models.StatusNotification: labelled("Domain %s has been deleted."),
	},
	"domain_import": {
		models.StatusNotification: labelled("Domain %s has been imported."),
	},
	"domain_record_create": {
		models.StatusNotification: domainRecord("added to"),
	},
	"domain_record_update": {
		models.StatusNotification: domainRecord("updated for"),
	},
	"domain_record_delete": {
		models.StatusNotification: domainRecord("removed from"),
	},
	"firewall_create": {
		models.StatusNotification: labelled("Firewall %s has been created."),
	},
	"firewall_delete": {
		models.StatusNotification: labelled("Firewall %s has been deleted."),
	},
	"firewall_enable": {
		models.StatusNotification: labelled("Firewall %s has been enabled."),
	},
	"firewall_disable": {
		models.StatusNotification: labelled("Firewall %s has been disabled."),
	},
	"firewall_update": {
		models.StatusNotification: labelled("Firewall %s has been updated."),
	},
	"firewall_device_add": {
		models.StatusNotification: secondaryOn("", "has been added to Firewall %s.", "A device has been added to Firewall %s."),
	},
	"firewall_device_remove": {
		models.StatusNotification: secondaryOn("", "has been removed from Firewall %s.", "A device has been removed from Firewall %s."),
	},
	"image_delete": {
		models.StatusScheduled: labelled("Image %s is scheduled for deletion."),
		models.StatusStarted:   labelled("Image %s is being deleted."),
		models.StatusFailed:    labelled("Image %s could not be deleted."),
		models.StatusFinished:  labelled("Image %s has been deleted."),
	},
	"image_update": {
		models.StatusNotification: labelled("Image %s has been updated."),
	},
	"image_upload": {
		models.StatusScheduled: labelled("Image %s is scheduled for upload."),
		models.StatusStarted:   labelled("Image %s is being uploaded."),
		models.StatusFailed:    imageUploadFailed,
		models.StatusFinished:  labelled("Image %s has been uploaded."),
	},
	"linode_boot": {
		models.StatusScheduled: labelled("Linode %s is scheduled to boot."),
		models.StatusStarted:   linodeWithConfig("Linode %s is booting%s."),
		models.StatusFailed:    linodeWithConfig("Linode %s could not be booted%s."),
		models.StatusFinished:  linodeWithConfig("Linode %s has booted%s."),
	},
	"linode_clone": {
		models.StatusScheduled: linodeClone("is scheduled to be cloned"),
		models.StatusStarted:   linodeClone("is being cloned"),
		models.StatusFailed:    linodeClone("could not be cloned"),
		models.StatusFinished:  linodeClone("has been cloned"),
	},
	"linode_create": {
		models.StatusScheduled: labelled("Linode %s is scheduled for creation."),
		models.StatusStarted:   labelled("Linode %s is being created."),
		models.StatusFailed:    labelled("Linode %s could not be created."),
		models.StatusFinished:  labelled("Linode %s has been created."),
	},
	"linode_delete": {
		models.StatusScheduled:    labelled("Linode %s is scheduled for deletion."),
		models.StatusStarted:      labelled("Linode %s is being deleted."),
		models.StatusFailed:       labelled("Linode %s could not be deleted."),
		models.StatusFinished:     labelled("Linode %s has been deleted."),
		models.StatusNotification: labelled("Linode %s has been deleted."),
	},
	"linode_migrate": {
		models.StatusScheduled: labelled("Linode %s is scheduled for migration."),
		models.StatusStarted:   labelled("Linode %s is being migrated."),
		models.StatusFailed:    labelled("Migration failed for Linode %s."),
		models.StatusFinished:  labelled("Linode %s has been migrated."),
	},
	"linode_mutate": {
		models.StatusScheduled: labelled("Linode %s is scheduled for an upgrade."),
		models.StatusStarted:   labelled("Linode %s is being upgraded."),
		models.StatusFailed:    labelled("Linode %s could not be upgraded."),
		models.StatusFinished:  labelled("Linode %s has been upgraded."),
	},
	"linode_reboot": {
		models.StatusScheduled: labelled("Linode %s is scheduled for a reboot."),
		models.StatusStarted:   linodeWithConfig("Linode %s is rebooting%s."),
		models.StatusFailed:    linodeWithConfig("Linode %s could not be rebooted%s."),
		models.StatusFinished:  linodeWithConfig("Linode %s has rebooted%s."),
	},
	"linode_rebuild": {
		models.StatusScheduled: labelled("Linode %s is scheduled for rebuild."),
		models.StatusStarted:   labelled("Linode %s is rebuilding."),
		models.StatusFailed:    labelled("Linode %s could not be rebuilt."),
		models.StatusFinished:  labelled("Linode %s has been rebuilt."),
	},
	"linode_resize": {
		models.StatusScheduled: labelled("Linode %s is scheduled for resizing."),
		models.StatusStarted:   labelled("Linode %s is resizing."),
		models.StatusFailed:    labelled("Linode %s could not be resized."),
		models.StatusFinished:  labelled("Linode %s has been resized."),
	},
	"linode_shutdown": {
		models.StatusScheduled: labelled("Linode %s is scheduled for shutdown."),
		models.StatusStarted:   labelled("Linode %s is shutting down."),
		models.StatusFailed:    labelled("Linode %s could not be shut down."),
		models.StatusFinished:  labelled("Linode %s has been shut down."),
	},
	"linode_snapshot": {
		models.StatusScheduled: labelled("Linode %s is scheduled for a snapshot backup."),
		models.StatusStarted:   labelled("A snapshot backup is being created for Linode %s."),
		models.StatusFailed:    labelled("Snapshot backup failed on Linode %s."),
		models.StatusFinished:  labelled("A snapshot backup has been created for %s."),
	},
	"linode_update": {
		models.StatusNotification: labelled("Linode %s has been updated."),
	},
	"lke_node_create": {
		models.StatusNotification: labelled("A node has been created for Kubernetes cluster %s."),
	},
	"lke_cluster_create": {
		models.StatusNotification: labelled("Kubernetes cluster %s has been created."),
	},
	"lke_cluster_delete": {
		models.StatusNotification: labelled("Kubernetes cluster %s has been deleted."),
	},
	"longviewclient_create": {
		models.StatusNotification: labelled("Longview Client %s has been created."),
	},
	"longviewclient_delete": {
		models.StatusNotification: labelled("Longview Client %s has been deleted."),
	},
	"nodebalancer_create": {
		models.StatusNotification: labelled("NodeBalancer %s has been created."),
	},
	"nodebalancer_delete": {
		models.StatusNotification: labelled("NodeBalancer %s has been deleted."),
	},
	"nodebalancer_update": {
		models.StatusNotification: labelled("NodeBalancer %s has been updated."),
	},
	"password_reset": {
		models.StatusScheduled: labelled("A password reset is scheduled for %s."),
		models.StatusStarted:   labelled("The password for %s is being reset."),
		models.StatusFailed:    labelled("Password reset failed for Linode %s."),
		models.StatusFinished:  labelled("Password has been reset on Linode %s."),
	},
	"stackscript_create": {
		models.StatusNotification: labelled("StackScript %s has been created."),
	},
	"stackscript_delete": {
		models.StatusNotification: labelled("StackScript %s has been deleted."),
	},
	"stackscript_publicize": {
		models.StatusNotification: labelled("StackScript %s has been made public."),
	},
	"stackscript_update": {
		models.StatusNotification: labelled("StackScript %s has been updated."),
	},
	"tag_create": {
		models.StatusNotification: labelled("Tag %s has been created."),
	},
	"tfa_enabled": {
		models.StatusNotification: static("Two-factor authentication has been enabled."),
	},
	"tfa_disabled": {
		models.StatusNotification: static("Two-factor authentication has been disabled."),
	},
	"ticket_create": {
		models.StatusNotification: labelled("New support ticket %s has been created."),
	},
	"ticket_update": {
		models.StatusNotification: labelled("Support ticket %s has been updated."),
	},
	"token_create": {
		models.StatusNotification: labelled("Personal Access Token `%s` has been created."),
	},
	"token_delete": {
		models.StatusNotification: labelled("Personal Access Token `%s` has been revoked."),
	},
	"user_create": {
		models.StatusNotification: labelled("User %s has been created."),
	},
	"user_delete": {
		models.StatusNotification: labelled("User %s has been deleted."),
	},
	"user_update": {
		models.StatusNotification: labelled("User %s has been updated."),
	},
	"volume_attach": {
		models.StatusScheduled: volumeAttach("is scheduled to be attached to"),
		models.StatusStarted:   volumeAttach("is being attached to"),
		models.StatusFailed:    volumeAttach("could not be attached to"),
		models.StatusFinished:  volumeAttach("has been attached to"),
	},
	"volume_create": {
		models.StatusScheduled:    labelled("Volume %s is scheduled for creation."),
		models.StatusStarted:      labelled("Volume %s is being created."),
		models.StatusFailed:       labelled("Volume %s could not be created."),
		models.StatusFinished:     labelled("Volume %s has been created."),
		models.StatusNotification: labelled("Volume %s has been created."),
	},
	"volume_delete": {
		models.StatusScheduled:    labelled("Volume %s is scheduled for deletion."),
		models.StatusStarted:      labelled("Volume %s is being deleted."),
		models.StatusFailed:       labelled("Volume %s could not be deleted."),
		models.StatusFinished:     labelled("Volume %s has been deleted."),
		models.StatusNotification: labelled("Volume %s has been deleted."),
	},
	"volume_detach": {
		models.StatusScheduled: volumeAttach("is scheduled for detachment from"),
		models.StatusStarted:   volumeAttach("is being detached from"),
		models.StatusFailed:    volumeAttach("could not be detached from"),
		models.StatusFinished:  volumeAttach("has been detached from"),
	},
	"volume_resize": {
		models.StatusNotification: labelled("Volume %s has been resized."),
	},
	"volume_update": {
		models.StatusNotification: labelled("Volume %s has been updated."),
	},
}

// entityLabel returns the primary entity label or ErrMissingEntity.
func entityLabel(e models.Event) (string, error) {
	if e.Entity == nil {
		return "", ErrMissingEntity
	}
	return e.Entity.Label, nil
}

func static(msg string) Template {
	return func(models.Event) (string, error) {
		return msg, nil
	}
}

// labelled fills the single %s of format with the entity label.
func labelled(format string) Template {
	return func(e models.Event) (string, error) {
		label, err := entityLabel(e)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(format, label), nil
	}
}

// secondaryOn names the secondary entity when present. format takes the
// primary label; without a secondary entity fallback is used instead.
func secondaryOn(noun, format, fallback string) Template {
	return func(e models.Event) (string, error) {
		label, err := entityLabel(e)
		if err != nil {
			return "", err
		}
		if e.SecondaryEntity == nil || e.SecondaryEntity.Label == "" {
			return fmt.Sprintf(fallback, label), nil
		}
		subject := e.SecondaryEntity.Label
		if noun != "" {
			subject = noun + " " + subject
		}
		return subject + " " + fmt.Sprintf(format, label), nil
	}
}

// linodeWithConfig appends the config profile the Linode used, if known.
func linodeWithConfig(format string) Template {
	return func(e models.Event) (string, error) {
		label, err := entityLabel(e)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(format, label, SafeSecondaryEntityLabel(e, " with config", "")), nil
	}
}

func linodeClone(verb string) Template {
	return func(e models.Event) (string, error) {
		label, err := entityLabel(e)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Linode %s %s%s.", label, verb, SafeSecondaryEntityLabel(e, " to", "")), nil
	}
}

func volumeAttach(verb string) Template {
	return func(e models.Event) (string, error) {
		label, err := entityLabel(e)
		if err != nil {
			return "", err
		}
		target := SafeSecondaryEntityLabel(e, "", " a Linode")
		return fmt.Sprintf("Volume %s %s%s.", label, verb, target), nil
	}
}

// domainRecord quotes the record name, which is often a substring of the
// domain itself.
func domainRecord(verb string) Template {
	return func(e models.Event) (string, error) {
		label, err := entityLabel(e)
		if err != nil {
			return "", err
		}
		if e.SecondaryEntity == nil || e.SecondaryEntity.Label == "" {
			return fmt.Sprintf("A domain record has been %s %s.", verb, label), nil
		}
		return fmt.Sprintf("Record `%s` has been %s %s.", e.SecondaryEntity.Label, verb, label), nil
	}
}

func imageUploadFailed(e models.Event) (string, error) {
	label, err := entityLabel(e)
	if err != nil {
		return "", err
	}
	if e.Message != "" {
		return fmt.Sprintf("Image %s could not be uploaded: %s", label, e.Message), nil
	}
	return fmt.Sprintf("Image %s could not be uploaded.", label), nil
}
