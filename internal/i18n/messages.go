package i18n

// french maps each english message to its french translation.
var french = map[string]string{
	"Authentication error. Please sign in.":
		"Erreur d'authentification. Veuillez vous connecter.",
	"Cannot query affiliations on organization without admin permission or higher.":
		"Impossible d'interroger les affiliations de l'organisation sans autorisation d'administrateur ou plus.",
	"Email already in use.":
		"Courriel déjà utilisé.",
	"If an account with this username is found, a password reset link will be found in your inbox.":
		"Si un compte avec ce nom d'utilisateur est trouvé, un lien de réinitialisation du mot de passe se trouvera dans votre boîte de réception.",
	"If an account with this username is found, an email verification link will be found in your inbox.":
		"Si un compte avec ce nom d'utilisateur est trouvé, un lien de vérification par courriel se trouvera dans votre boîte de réception.",
	"Incorrect TFA code. Please sign in again.":
		"Code AF incorrect. Veuillez vous connecter à nouveau.",
	"Incorrect username or password. Please try again.":
		"Nom d'utilisateur ou mot de passe incorrect. Veuillez réessayer.",
	"Invalid cursor, please provide a valid cursor.":
		"Curseur invalide, veuillez fournir un curseur valide.",
	"No organization with the provided slug could be found.":
		"Aucune organisation avec le slug fourni n'a pu être trouvée.",
	"Organization has already been verified.":
		"L'organisation a déjà été vérifiée.",
	"Organization name already in use, please choose another and try again.":
		"Le nom de l'organisation est déjà utilisé, veuillez en choisir un autre et réessayer.",
	"Organization name already in use. Please try again with a different name.":
		"Le nom de l'organisation est déjà utilisé. Veuillez réessayer avec un nom différent.",
	"Passing both `first` and `last` to paginate the `%s` connection is not supported.":
		"Passer à la fois `first` et `last` pour paginer la connexion `%s` n'est pas supporté.",
	"Password does not meet requirements.":
		"Le mot de passe ne répond pas aux exigences.",
	"Password was successfully reset.":
		"Le mot de passe a été réinitialisé avec succès.",
	"Password was successfully updated.":
		"Le mot de passe a été mis à jour avec succès.",
	"Passwords do not match.":
		"Les mots de passe ne correspondent pas.",
	"Permission Denied: Could not retrieve specified organization.":
		"Permission refusée : Impossible de récupérer l'organisation spécifiée.",
	"Permission Denied: Please contact organization admin for help with removing domain.":
		"Permission refusée : Veuillez contacter l'administrateur de l'organisation pour obtenir de l'aide sur la suppression du domaine.",
	"Permission Denied: Please contact organization admin for help with removing organization.":
		"Permission refusée : Veuillez contacter l'administrateur de l'organisation pour obtenir de l'aide sur la suppression de l'organisation.",
	"Permission Denied: Please contact organization admin for help with removing users.":
		"Permission refusée : Veuillez contacter l'administrateur de l'organisation pour obtenir de l'aide sur la suppression des utilisateurs.",
	"Permission Denied: Please contact organization admin for help with updating organization.":
		"Permission refusée : Veuillez contacter l'administrateur de l'organisation pour obtenir de l'aide sur la mise à jour de l'organisation.",
	"Permission Denied: Please contact organization admin for help with user invitations.":
		"Permission refusée : Veuillez contacter l'administrateur de l'organisation pour obtenir de l'aide sur les invitations d'utilisateurs.",
	"Permission Denied: Please contact organization admin for help with user role changes.":
		"Permission refusée : Veuillez contacter l'administrateur de l'organisation pour obtenir de l'aide sur les changements de rôle des utilisateurs.",
	"Permission Denied: Please contact organization admin for help.":
		"Permission refusée : Veuillez contacter l'administrateur de l'organisation pour obtenir de l'aide.",
	"Permission Denied: Please contact organization user for help with creating domain.":
		"Permission refusée : Veuillez contacter l'utilisateur de l'organisation pour obtenir de l'aide sur la création du domaine.",
	"Permission Denied: Please contact organization user for help with retrieving domains.":
		"Permission refusée : Veuillez contacter l'utilisateur de l'organisation pour obtenir de l'aide sur la récupération des domaines.",
	"Permission Denied: Please contact organization user for help with retrieving this domain.":
		"Permission refusée : Veuillez contacter l'utilisateur de l'organisation pour obtenir de l'aide sur la récupération de ce domaine.",
	"Permission Denied: Please contact organization user for help with scanning this domain.":
		"Permission refusée : Veuillez contacter l'utilisateur de l'organisation pour obtenir de l'aide sur l'analyse de ce domaine.",
	"Permission Denied: Please contact organization user for help with updating this domain.":
		"Permission refusée : Veuillez contacter l'utilisateur de l'organisation pour obtenir de l'aide sur la mise à jour de ce domaine.",
	"Permission Denied: Please contact super admin for help with removing domain.":
		"Permission refusée : Veuillez contacter le super administrateur pour obtenir de l'aide sur la suppression du domaine.",
	"Permission Denied: Please contact super admin for help with removing organization.":
		"Permission refusée : Veuillez contacter le super administrateur pour obtenir de l'aide sur la suppression de l'organisation.",
	"Permission Denied: Please contact super admin for help with removing users.":
		"Permission refusée : Veuillez contacter le super administrateur pour obtenir de l'aide sur la suppression des utilisateurs.",
	"Permission Denied: Please contact super admin for help with retrieving affiliations.":
		"Permission refusée : Veuillez contacter le super administrateur pour obtenir de l'aide sur la récupération des affiliations.",
	"Permission Denied: Please contact super admin for help with updating organization.":
		"Permission refusée : Veuillez contacter le super administrateur pour obtenir de l'aide sur la mise à jour de l'organisation.",
	"Permission Denied: Please contact super admin for help with user role changes.":
		"Permission refusée : Veuillez contacter le super administrateur pour obtenir de l'aide sur les changements de rôle des utilisateurs.",
	"Permission Denied: Please contact super admin for help with verifying this organization.":
		"Permission refusée : Veuillez contacter le super administrateur pour obtenir de l'aide sur la vérification de cette organisation.",
	"Permission error: Unable to close other user's account.":
		"Erreur de permission : Impossible de fermer le compte d'un autre utilisateur.",
	"Permissions error. You do not have sufficient permissions to access this data.":
		"Erreur de permission. Vous n'avez pas les autorisations suffisantes pour accéder à ces données.",
	"Query error, query is too complex.":
		"Erreur de requête, la requête est trop complexe.",
	"Requesting `%d` records on the `%s` connection exceeds the `%s` limit of 100 records.":
		"La demande de `%d` enregistrements sur la connexion `%s` dépasse la limite `%s` de 100 enregistrements.",
	"Successfully closed account.":
		"Le compte a été fermé avec succès.",
	"Successfully dispatched one time scan.":
		"Analyse ponctuelle envoyée avec succès.",
	"Successfully email verified account, and set TFA send method to email.":
		"Compte vérifié par courriel avec succès, et méthode d'envoi AF réglée sur le courriel.",
	"Successfully invited user to organization, and sent notification email.":
		"L'utilisateur a été invité avec succès à l'organisation, et le courriel de notification a été envoyé.",
	"Successfully left organization: %s":
		"L'organisation a été quittée avec succès : %s",
	"Successfully removed domain: %s from %s.":
		"A réussi à supprimer le domaine : %s de %s.",
	"Successfully removed organization: %s.":
		"A réussi à supprimer l'organisation : %s.",
	"Successfully removed user from organization.":
		"L'utilisateur a été retiré de l'organisation avec succès.",
	"Successfully requested invite to organization, and sent notification email.":
		"La demande d'invitation à l'organisation a été envoyée avec succès, et le courriel de notification a été envoyé.",
	"Successfully sent invitation to service, and organization email.":
		"L'invitation au service et le courriel de l'organisation ont été envoyés avec succès.",
	"Successfully signed out.":
		"J'ai réussi à me déconnecter.",
	"Successfully verified organization: %s.":
		"Envoi réussi de l'organisation vérifiée : %s.",
	"Token value incorrect, please sign in again.":
		"La valeur du jeton est incorrecte, veuillez vous connecter à nouveau.",
	"Too many failed login attempts, please reset your password, and try again.":
		"Trop de tentatives de connexion échouées, veuillez réinitialiser votre mot de passe et réessayer.",
	"Unable to close account of an undefined user.":
		"Impossible de fermer le compte d'un utilisateur non défini.",
	"Unable to close account. Please try again.":
		"Impossible de fermer le compte. Veuillez réessayer.",
	"Unable to create domain in unknown organization.":
		"Impossible de créer un domaine dans une organisation inconnue.",
	"Unable to create domain, organization has already claimed it.":
		"Impossible de créer le domaine, l'organisation l'a déjà réclamé.",
	"Unable to create domain. DKIM selectors must be of the form `selector._domainkey`.":
		"Impossible de créer le domaine. Les sélecteurs DKIM doivent être de la forme `selector._domainkey`.",
	"Unable to create domain. Domain name is invalid.":
		"Impossible de créer le domaine. Le nom de domaine est invalide.",
	"Unable to create domain. Please try again.":
		"Impossible de créer un domaine. Veuillez réessayer.",
	"Unable to create organization. Acronym is invalid.":
		"Impossible de créer l'organisation. L'acronyme est invalide.",
	"Unable to create organization. Name is required.":
		"Impossible de créer l'organisation. Le nom est obligatoire.",
	"Unable to create organization. Name must contain letters or digits.":
		"Impossible de créer l'organisation. Le nom doit contenir des lettres ou des chiffres.",
	"Unable to create organization. Please try again.":
		"Impossible de créer une organisation. Veuillez réessayer.",
	"Unable to dispatch one time scan. Please try again.":
		"Impossible d'envoyer l'analyse ponctuelle. Veuillez réessayer.",
	"Unable to find the requested domain.":
		"Impossible de trouver le domaine demandé.",
	"Unable to invite user to organization. User is already affiliated with organization.":
		"Impossible d'inviter un utilisateur à une organisation. L'utilisateur est déjà affilié à l'organisation.",
	"Unable to invite user to unknown organization.":
		"Impossible d'inviter un utilisateur à une organisation inconnue.",
	"Unable to invite user. Please provide a valid email address.":
		"Impossible d'inviter l'utilisateur. Veuillez fournir une adresse courriel valide.",
	"Unable to invite user. Please select a valid role.":
		"Impossible d'inviter l'utilisateur. Veuillez choisir un rôle valide.",
	"Unable to invite user. Please try again.":
		"Impossible d'inviter un utilisateur. Veuillez réessayer.",
	"Unable to invite yourself to an org.":
		"Impossible de s'inviter à un org.",
	"Unable to leave organization. Please try again.":
		"Impossible de quitter l'organisation. Veuillez réessayer.",
	"Unable to leave organization. You are not affiliated with it.":
		"Impossible de quitter l'organisation. Vous n'y êtes pas affilié.",
	"Unable to leave undefined organization.":
		"Impossible de quitter une organisation non définie.",
	"Unable to parse request body.":
		"Impossible d'analyser le corps de la requête.",
	"Unable to process request. Please try again.":
		"Impossible de traiter la demande. Veuillez réessayer.",
	"Unable to refresh tokens, please sign in.":
		"Impossible de rafraîchir les jetons, veuillez vous connecter.",
	"Unable to remove a user that already does not belong to this organization.":
		"Impossible de supprimer un utilisateur qui n'appartient déjà plus à cette organisation.",
	"Unable to remove domain from unknown organization.":
		"Impossible de supprimer le domaine d'une organisation inconnue.",
	"Unable to remove domain. Domain is not part of organization.":
		"Impossible de supprimer le domaine. Le domaine ne fait pas partie de l'organisation.",
	"Unable to remove domain. Please try again.":
		"Impossible de supprimer le domaine. Veuillez réessayer.",
	"Unable to remove organization. Please try again.":
		"Impossible de supprimer l'organisation. Veuillez réessayer.",
	"Unable to remove unknown domain.":
		"Impossible de supprimer un domaine inconnu.",
	"Unable to remove unknown organization.":
		"Impossible de supprimer une organisation inconnue.",
	"Unable to remove unknown user from organization.":
		"Impossible de supprimer un utilisateur inconnu de l'organisation.",
	"Unable to remove user from this organization. Please try again.":
		"Impossible de supprimer l'utilisateur de cette organisation. Veuillez réessayer.",
	"Unable to remove user from unknown organization.":
		"Impossible de supprimer un utilisateur d'une organisation inconnue.",
	"Unable to request a one time scan on an invalid domain.":
		"Impossible de demander une analyse ponctuelle sur un domaine invalide.",
	"Unable to request a one time scan on an unknown domain.":
		"Impossible de demander une analyse ponctuelle sur un domaine inconnu.",
	"Unable to request invite to organization with which you are already affiliated.":
		"Impossible de demander une invitation à une organisation à laquelle vous êtes déjà affilié.",
	"Unable to request invite to organization with which you have already requested to join.":
		"Impossible de demander une invitation à une organisation que vous avez déjà demandé à rejoindre.",
	"Unable to request invite to unknown organization.":
		"Impossible de demander une invitation à une organisation inconnue.",
	"Unable to request invite. Please try again.":
		"Impossible de demander une invitation. Veuillez réessayer.",
	"Unable to reset password. Please request a new email.":
		"Impossible de réinitialiser le mot de passe. Veuillez demander un nouveau courriel.",
	"Unable to retrieve DMARC report information for an invalid period.":
		"Impossible de récupérer les informations du rapport DMARC pour une période invalide.",
	"Unable to retrieve DMARC report information for this domain.":
		"Impossible de récupérer les informations du rapport DMARC pour ce domaine.",
	"Unable to sign in, please try again.":
		"Impossible de se connecter, veuillez réessayer.",
	"Unable to sign up, please contact org admin for a new invite.":
		"Impossible de s'inscrire, veuillez contacter l'administrateur de l'organisation pour obtenir une nouvelle invitation.",
	"Unable to sign up. Please try again.":
		"Impossible de s'inscrire. Veuillez réessayer.",
	"Unable to update domain in an unknown org.":
		"Impossible de mettre à jour le domaine dans un org inconnu.",
	"Unable to update domain that does not belong to the given organization.":
		"Impossible de mettre à jour un domaine qui n'appartient pas à l'organisation donnée.",
	"Unable to update domain. DKIM selectors must be of the form `selector._domainkey`.":
		"Impossible de mettre à jour le domaine. Les sélecteurs DKIM doivent être de la forme `selector._domainkey`.",
	"Unable to update domain. Domain name is already in use.":
		"Impossible de mettre à jour le domaine. Le nom de domaine est déjà utilisé.",
	"Unable to update domain. Domain name is invalid.":
		"Impossible de mettre à jour le domaine. Le nom de domaine est invalide.",
	"Unable to update domain. Please try again.":
		"Impossible de mettre à jour le domaine. Veuillez réessayer.",
	"Unable to update organization. Acronym is invalid.":
		"Impossible de mettre à jour l'organisation. L'acronyme est invalide.",
	"Unable to update organization. Name is required.":
		"Impossible de mettre à jour l'organisation. Le nom est obligatoire.",
	"Unable to update organization. Name must contain letters or digits.":
		"Impossible de mettre à jour l'organisation. Le nom doit contenir des lettres ou des chiffres.",
	"Unable to update organization. Please try again.":
		"Impossible de mettre à jour l'organisation. Veuillez réessayer.",
	"Unable to update password, current password does not match. Please try again.":
		"Impossible de mettre à jour le mot de passe, le mot de passe actuel ne correspond pas. Veuillez réessayer.",
	"Unable to update profile. Display name cannot be empty.":
		"Impossible de mettre à jour le profil. Le nom d'affichage ne peut pas être vide.",
	"Unable to update profile. Please verify your email before enabling email authentication.":
		"Impossible de mettre à jour le profil. Veuillez vérifier votre courriel avant d'activer l'authentification par courriel.",
	"Unable to update profile. Username must be a valid email address.":
		"Impossible de mettre à jour le profil. Le nom d'utilisateur doit être une adresse courriel valide.",
	"Unable to update role: invalid role.":
		"Impossible de mettre à jour le rôle : rôle invalide.",
	"Unable to update role: organization unknown.":
		"Impossible de mettre à jour le rôle : organisation inconnue.",
	"Unable to update role: user does not belong to organization.":
		"Impossible de mettre à jour le rôle : l'utilisateur n'appartient pas à l'organisation.",
	"Unable to update role: user unknown.":
		"Impossible de mettre à jour le rôle : utilisateur inconnu.",
	"Unable to update unknown domain.":
		"Impossible de mettre à jour un domaine inconnu.",
	"Unable to update unknown organization.":
		"Impossible de mettre à jour une organisation inconnue.",
	"Unable to update user's role. Please try again.":
		"Impossible de mettre à jour le rôle de l'utilisateur. Veuillez réessayer.",
	"Unable to update your own role.":
		"Impossible de mettre à jour votre propre rôle.",
	"Unable to verify account. Please request a new email.":
		"Impossible de vérifier le compte. Veuillez demander un nouveau courriel.",
	"Unable to verify organization. Please try again.":
		"Impossible de vérifier l'organisation. Veuillez réessayer.",
	"Unable to verify unknown organization.":
		"Impossible de vérifier une organisation inconnue.",
	"User role was updated successfully.":
		"Le rôle de l'utilisateur a été mis à jour avec succès.",
	"Username not available, please try another.":
		"Le nom d'utilisateur n'est pas disponible, veuillez en essayer un autre.",
	"Verification error. Please activate multi-factor authentication to access content.":
		"Erreur de vérification. Veuillez activer l'authentification multifactorielle pour accéder au contenu.",
	"Verification error. Please verify your account via email to access content.":
		"Erreur de vérification. Veuillez vérifier votre compte par courriel pour accéder au contenu.",
	"You must provide a `first` or `last` value to properly paginate the `%s` connection.":
		"Vous devez fournir une valeur `first` ou `last` pour paginer correctement la connexion `%s`.",
	"`%s` on the `%s` connection cannot be less than zero.":
		"`%s` sur la connexion `%s` ne peut être inférieur à zéro.",
}
