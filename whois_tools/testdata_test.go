package whois_tools

const laResponse = `Domain Name: NIC.LA
Registry Domain ID: D472370-LANIC
Registrar WHOIS Server: whois.nic.la
Registrar URL:
Updated Date: 2016-10-17T04:13:14.0Z
Creation Date: 2000-11-20T01:00:00.0Z
Registry Expiry Date: 2026-11-20T23:59:59.0Z
Registrar: TLD Registrar Solutions Ltd
Registrar IANA ID:
Domain Status: serverTransferProhibited https://icann.org/epp#serverTransferProhibited
Domain Status: serverUpdateProhibited https://icann.org/epp#serverUpdateProhibited
Domain Status: serverDeleteProhibited https://icann.org/epp#serverDeleteProhibited
Domain Status: serverRenewProhibited https://icann.org/epp#serverRenewProhibited
Domain Status: clientTransferProhibited https://icann.org/epp#clientTransferProhibited
Registrant Email: https://whois.nic.la/contact/nic.la/registrant
Admin Email: https://whois.nic.la/contact/nic.la/admin
Tech Email: https://whois.nic.la/contact/nic.la/tech
Name Server: NS0.CENTRALNIC-DNS.COM
Name Server: NS1.CENTRALNIC-DNS.COM
Name Server: NS2.CENTRALNIC-DNS.COM
Name Server: NS3.CENTRALNIC-DNS.COM
Name Server: NS4.CENTRALNIC-DNS.COM
Name Server: NS5.CENTRALNIC-DNS.COM
DNSSEC: unsigned
Registrar Abuse Contact Email: abuse@centralnic.com
Registrar Abuse Contact Phone: +44.2033880600
URL of the ICANN Whois Inaccuracy Complaint Form: https://www.icann.org/wicf/
>>> Last update of WHOIS database: 2025-10-12T05:44:20.0Z <<<`

const icannResponse = `Domain Name: EXAMPLE.COM
Registry Domain ID: 2336799_DOMAIN_COM-VRSN
Registrar WHOIS Server: whois.iana.org
Registrar: RESERVED-Internet Assigned Numbers Authority
Name Server: A.IANA-SERVERS.NET
Domain Status: clientDeleteProhibited https://icann.org/epp#clientDeleteProhibited`
